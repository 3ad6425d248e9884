package instrument

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"strings"

	"github.com/Alijeyrad/ghasedak/pkg/event"
)

// Extractor reads a request's cookies and body under a size budget,
// producing a redaction-aware payload for diagnostic events.
//
// Extraction is strictly best-effort: any read or parse failure degrades
// to a length-only redacted placeholder and is logged at debug level.
// Nothing from this type ever fails the host request.
type Extractor struct {
	maxBodyBytes   int64
	sendDefaultPII bool
	log            *slog.Logger
}

// Extract builds the request info payload. It returns nil only when the
// request carried neither collectable cookies nor a body.
//
// Body reads go through Request.Body, which is cached by contract, so
// calling Extract twice observes the same content length without
// re-consuming the underlying stream.
func (e *Extractor) Extract(ctx context.Context, req Request) *event.RequestInfo {
	info := &event.RequestInfo{}

	if e.sendDefaultPII {
		if cookies := req.Cookies(); len(cookies) > 0 {
			info.Cookies = cookies
		}
	}

	body, err := req.Body(ctx)
	if err != nil {
		e.log.Debug("request body unreadable, skipping data extraction", slog.Any("error", err))
		body = nil
	}

	length := int64(len(body))
	switch {
	case err != nil:
		// data stays unset
	case length > e.maxBodyBytes:
		info.Data = event.Redacted(event.ReasonSizeLimit, length)
	default:
		info.Data = e.parsedBody(ctx, req, body)
	}

	if info.Cookies == nil && info.Data == nil {
		return nil
	}
	return info
}

// parsedBody attempts structured parsing in priority order: form fields
// first, then JSON, else a raw-unparsed redaction. Empty bodies yield nil.
func (e *Extractor) parsedBody(ctx context.Context, req Request, body []byte) any {
	form, err := req.Form(ctx)
	if err != nil {
		e.log.Debug("form parse failed, falling back to raw redaction", slog.Any("error", err))
	} else if !form.Empty() {
		return formPayload(form)
	}

	if err == nil && isJSONContentType(req.Header("Content-Type")) {
		var v any
		if jsonErr := json.Unmarshal(body, &v); jsonErr == nil {
			return v
		}
		e.log.Debug("json parse failed, falling back to raw redaction")
	}

	if len(body) > 0 {
		return event.Redacted(event.ReasonRawUnparsed, int64(len(body)))
	}
	return nil
}

// formPayload keeps plain field values and replaces every file upload with
// a length-only redaction. File contents are never included.
func formPayload(form *FormData) map[string]any {
	data := make(map[string]any, len(form.Fields)+len(form.Files))
	for k, v := range form.Fields {
		data[k] = v
	}
	for k, f := range form.Files {
		if f.Size < 0 {
			data[k] = event.Redacted(event.ReasonUnreadableFile, 0)
			continue
		}
		data[k] = event.Redacted(event.ReasonRawUnparsed, f.Size)
	}
	return data
}

// isJSONContentType reports whether the media type is application/json or
// a +json suffixed type such as application/vnd.api+json.
func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
