package door

import (
	"context"

	"google.golang.org/grpc/metadata"

	domain "github.com/oshokin/timed-door/internal/domain/door"
)

// Metadata keys carrying the caller's identity.
const (
	ActorHostnameKey = "x-actor-hostname"
	ActorUsernameKey = "x-actor-username"
)

// ActorToOutgoingContext attaches actor to the outgoing request metadata.
func ActorToOutgoingContext(ctx context.Context, actor *domain.Actor) context.Context {
	if actor == nil {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx,
		ActorHostnameKey, actor.Hostname,
		ActorUsernameKey, actor.Username,
	)
}

// ActorFromIncomingContext reads the caller's identity from request metadata.
// It returns nil when neither key is present.
func ActorFromIncomingContext(ctx context.Context) *domain.Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	hostname := first(md.Get(ActorHostnameKey))
	username := first(md.Get(ActorUsernameKey))

	if hostname == "" && username == "" {
		return nil
	}

	return &domain.Actor{
		Hostname: hostname,
		Username: username,
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
