package dailyreport

import "errors"

var (
	ErrPostNotFound      = errors.New("daily report post not found")
	ErrSectionNotFound   = errors.New("daily report section not found")
	ErrNotAuthor         = errors.New("only the author can edit this section")
	ErrNotReviewer       = errors.New("caller cannot review this section")
	ErrRejectReasonEmpty = errors.New("a reason is required to return a section")
)
