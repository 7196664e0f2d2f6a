package errors

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToGRPCError converts err to a gRPC status error. Metadata on an *Error is
// attached as a structpb.Struct detail.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(e.Code.GRPCCode(), e.Message)
	if len(e.Meta) > 0 {
		if withDetails, detailErr := st.WithDetails(metaToStruct(e.Meta)); detailErr == nil {
			st = withDetails
		}
	}
	return st.Err()
}

// FromGRPCError converts a gRPC status error back into an *Error.
// Errors that are not status errors are returned unchanged.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	out := &Error{
		Code:    codeFromGRPC(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		if s, ok := detail.(*structpb.Struct); ok {
			out.Meta = s.AsMap()
			break
		}
	}
	return out
}

// metaToStruct falls back to the %v form for values structpb cannot hold,
// such as the map[string][]string produced by validation errors
func metaToStruct(meta map[string]any) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(meta))
	for k, v := range meta {
		val, err := structpb.NewValue(v)
		if err != nil {
			val = structpb.NewStringValue(fmt.Sprintf("%v", v))
		}
		fields[k] = val
	}
	return &structpb.Struct{Fields: fields}
}
