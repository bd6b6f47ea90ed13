package rpc

import (
	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error builds a status carrying an ErrorInfo detail with reason and md.
func Error(code codes.Code, msg, reason string, md map[string]string) error {
	st := status.New(code, msg)
	withInfo, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   common.ErrorDomain,
		Metadata: md,
	})
	if err != nil {
		return st.Err()
	}
	return withInfo.Err()
}

// Info returns the ErrorInfo detail attached to err, if any.
func Info(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}

// Reason returns the ErrorInfo reason attached to err, or "".
func Reason(err error) string {
	if info, ok := Info(err); ok {
		return info.GetReason()
	}
	return ""
}
