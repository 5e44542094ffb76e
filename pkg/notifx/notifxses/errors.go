package notifxses

import "github.com/casedesk/casedesk/pkg/errx"

var sesErrors = errx.NewRegistry("NOTIFX_SES")

var (
	ErrSendFailed = sesErrors.Register("SEND_FAILED", errx.TypeExternal, 500, "SES send email failed")
)
