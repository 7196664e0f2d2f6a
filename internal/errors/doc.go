// Package errors provides the coded error type used across coc-api.
//
// Every error that crosses a package boundary carries a Code that maps onto a
// gRPC status code, a user-facing message, an optional cause, and optional
// metadata such as the offending dice term.
//
// # Creating errors
//
//	err := errors.InvalidArgumentf("invalid dice term %q", term).
//	    WithMeta("notation", notation)
//
// # Wrapping
//
// Wrap keeps the code of the wrapped error, so a parse failure deep in the
// dice engine still reaches the client as InvalidArgument:
//
//	expr, err := dice.Parse(input.Notation)
//	if err != nil {
//	    return nil, errors.Wrap(err, "failed to parse notation")
//	}
//
// # Checking
//
//	if errors.IsNotFound(err) {
//	    // create a fresh session
//	}
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err). Metadata is attached to the status
// as a google.protobuf.Struct detail and restored by FromGRPCError.
package errors
