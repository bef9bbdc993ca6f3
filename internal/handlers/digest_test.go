package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"sweather/internal/service"
)

func TestDigestHandler_Send(t *testing.T) {
	d := &mockDigest{report: service.DigestReport{MessageID: "SM42", Days: 14, Body: "digest body"}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Digest: d}
	r := newTestRouter(s)

	w := doAuthedRequest(t, r, http.MethodPost, "/api/v1/digest/send", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if d.calls != 1 {
		t.Fatalf("send calls = %d, want 1", d.calls)
	}

	var out service.DigestReport
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.MessageID != "SM42" || out.Days != 14 {
		t.Fatalf("unexpected report: %+v", out)
	}
}

func TestDigestHandler_SendFailure(t *testing.T) {
	d := &mockDigest{err: errors.New("twilio down")}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Digest: d}
	r := newTestRouter(s)

	w := doAuthedRequest(t, r, http.MethodPost, "/api/v1/digest/send", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status=%d, want 502 on gateway failure", w.Code)
	}
}
