// Package errors provides the coded error type used across spell-cards.
//
// Errors carry a Code, a user facing Message, an optional Cause and free-form
// metadata. The web layer maps codes onto HTTP status codes, so repositories
// and orchestrators should always return one of the constructors below rather
// than bare fmt errors.
//
// # Basic Usage
//
//	err := errors.NotFoundf("card %d not found", index)
//	err := errors.InvalidArgumentf("unknown area shape %q", shape)
//
// Wrapping keeps the code of a coded cause:
//
//	if err := repo.Load(ctx); err != nil {
//	    return errors.Wrap(err, "failed to load spell book")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("spell_name", card.Name, vb)
//	errors.ValidateRange("spell_level", card.Level, 1, 10, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer Guidelines
//
// Repositories return NotFound for missing keys and Internal for storage
// failures. Orchestrators validate inputs and return InvalidArgument or
// FailedPrecondition. Handlers translate codes with Code.HTTPStatus and log
// anything Internal.
package errors
