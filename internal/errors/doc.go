// Package errors is the structured error type shared by every layer of the
// initiative tracker.
//
// An Error carries a Code, a message safe to show a game master, an optional
// Cause and free-form metadata:
//
//	err := errors.NotFoundf("combatant %s not found", id).
//	    WithMeta("session_id", sessionID)
//
// Wrapping keeps the code of an inner Error, and turns anything else into
// CodeInternal:
//
//	if err := repo.UpdateHP(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to update hit points")
//	}
//
// Layer guidelines:
//
// Repository layer returns NotFound / InvalidArgument and wraps driver errors.
//
// Orchestrator layer returns FailedPrecondition for game-flow violations
// ("start combat first"), and converts every failure into a session
// notification before returning it.
//
// Handler layer maps codes onto HTTP statuses with Code.HTTPStatus, and onto
// gRPC statuses with ToGRPCError.
package errors
