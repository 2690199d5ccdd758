package middleware

import (
	"net/http"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	t.Parallel()

	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Custom", "a")
	hdr.Add("X-Custom", "b")
	body := []byte(`{"items":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok {
		t.Fatal("decodePayload rejected valid payload")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("content type lost: %v", gotHdr)
	}
	if vals := gotHdr.Values("X-Custom"); len(vals) != 2 {
		t.Errorf("multi-value header lost: %v", vals)
	}
	if string(gotBody) != string(body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadTruncated(t *testing.T) {
	t.Parallel()

	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 8)} {
		if _, _, _, ok := decodePayload(bs); ok && len(bs) < 8 {
			t.Errorf("decodePayload accepted %d bytes", len(bs))
		}
	}
	// Header length pointing past the end of the buffer.
	bs, _ := encodePayload(200, http.Header{}, []byte("x"))
	bs[7] = 0xFF
	if _, _, _, ok := decodePayload(bs); ok {
		t.Error("decodePayload accepted corrupt header length")
	}
}
