package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Request headers sent by htmx.

func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// IsHistoryRestore reports a cache-miss history restore. Those requests must
// not push a new history entry.
func IsHistoryRestore(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-History-Restore-Request"), "true")
}

// WantsPartial reports whether only the main fragment should be rendered.
// History restores are partial too: htmx swaps them into the body.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r)
}

// HXTarget returns the id of the element being swapped.
func HXTarget(r *http.Request) string { return r.Header.Get("Hx-Target") }

// HXCurrentURL returns the browser URL at the time of the request.
func HXCurrentURL(r *http.Request) string { return r.Header.Get("Hx-Current-Url") }

// Response headers understood by htmx.

func SetHXRedirect(w http.ResponseWriter, url string) { w.Header().Set("Hx-Redirect", url) }

func SetHXPushURL(w http.ResponseWriter, url string) { w.Header().Set("Hx-Push-Url", url) }

// SetHXReswap overrides the swap of the triggering element, e.g. "none".
func SetHXReswap(w http.ResponseWriter, swap string) { w.Header().Set("Hx-Reswap", swap) }

// SetHXTrigger adds event to the Hx-Trigger header. Events already set on the
// response are kept, so a toast and nav:activate can travel together. A nil
// payload is sent as true.
func SetHXTrigger(w http.ResponseWriter, event string, payload any) {
	events := map[string]any{}
	if prev := w.Header().Get("Hx-Trigger"); prev != "" {
		if err := json.Unmarshal([]byte(prev), &events); err != nil {
			// A plain event name list.
			events = map[string]any{}
			for _, name := range strings.Split(prev, ",") {
				if name = strings.TrimSpace(name); name != "" {
					events[name] = true
				}
			}
		}
	}
	var value any = true
	if payload != nil {
		value = payload
	}
	events[event] = value

	b, err := json.Marshal(events)
	if err != nil {
		events[event] = true
		b, _ = json.Marshal(events)
	}
	w.Header().Set("Hx-Trigger", string(b))
}

// keepPage answers an htmx request without swapping anything and shows msg
// as an error toast.
func keepPage(w http.ResponseWriter, status int, msg string) {
	SetHXReswap(w, "none")
	triggerToast(w, msg, "error")
	w.WriteHeader(status)
}
