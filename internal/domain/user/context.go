package user

import "context"

type actorKey struct{}

// WithActor stores the caller on ctx.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFromContext returns the caller stored by WithActor.
func ActorFromContext(ctx context.Context) (Actor, error) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	if !ok {
		return Actor{}, ErrActorMissing
	}
	return a, nil
}

// ActorFromClaims builds an Actor from verified access-token claims.
func ActorFromClaims(claims map[string]interface{}) (Actor, error) {
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return Actor{}, ErrEmployeeIDClaimMissing
	}
	roleStr, _ := claims["role"].(string)
	role := Role(roleStr)
	if !role.IsValid() {
		return Actor{}, ErrInvalidRole
	}
	return Actor{EmployeeID: employeeID, Role: role}, nil
}
