package composables

import (
	"context"
	"errors"

	"github.com/evergreen-centers/evergreen/pkg/authz"
	"github.com/evergreen-centers/evergreen/pkg/constants"
)

var ErrNoActor = errors.New("no actor found in context")

// WithActor stores the resolved actor identity on the context. The identity
// is produced by the authentication layer; services still take the actor as
// an explicit parameter, this composable only carries it between middleware
// and handlers.
func WithActor(ctx context.Context, actor authz.Actor) context.Context {
	return context.WithValue(ctx, constants.ActorKey, actor)
}

func UseActor(ctx context.Context) (authz.Actor, error) {
	actor, ok := ctx.Value(constants.ActorKey).(authz.Actor)
	if !ok {
		return authz.Actor{}, ErrNoActor
	}
	return actor, nil
}
