package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestLocationUnmarshal(t *testing.T) {
	var req struct {
		Current Location `json:"current"`
		Pickup  Location `json:"pickup"`
	}

	body := `{"current": [33.45, -112.07], "pickup": "  1901 W Madison St,   Phoenix, AZ "}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Current.Coord == nil {
		t.Fatalf("current location should be a coordinate")
	}
	if req.Current.Coord.Lat != 33.45 || req.Current.Coord.Lon != -112.07 {
		t.Errorf("current = %+v, want lat=33.45 lon=-112.07", *req.Current.Coord)
	}

	if req.Pickup.Coord != nil {
		t.Errorf("pickup should be an address")
	}
	if got := req.Pickup.String(); got != "1901 W Madison St, Phoenix, AZ" {
		t.Errorf("pickup normalized = %q", got)
	}
}

func TestLocationUnmarshalRejectsBadShapes(t *testing.T) {
	bodies := []string{`[1]`, `[1, 2, 3]`, `[95, 10]`, `{"lat": 1}`, `42`, `["a", "b"]`}

	for _, b := range bodies {
		var l Location
		if err := json.Unmarshal([]byte(b), &l); err == nil {
			t.Errorf("expected error for %s", b)
		}
	}
}

func TestLocationRoundTrip(t *testing.T) {
	b, err := json.Marshal([]Location{CoordLocation(1.5, 2.5), AddressLocation("Dallas, TX")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `[[1.5,2.5],"Dallas, TX"]` {
		t.Errorf("marshal = %s", b)
	}
}

func TestLegErrorUnwrapsUpstream(t *testing.T) {
	up := &UpstreamError{Service: "ors directions", Msg: "no route", Raw: []byte(`{"error":"x"}`)}
	err := error(&LegError{Index: 2, Err: up})

	if err.Error() != "Leg 2 failed: ors directions: no route" {
		t.Errorf("message = %q", err.Error())
	}

	var got *UpstreamError
	if !errors.As(err, &got) {
		t.Fatalf("expected UpstreamError in chain")
	}
	if string(got.RawResponse()) != `{"error":"x"}` {
		t.Errorf("raw = %s", got.RawResponse())
	}
}

func TestUpstreamErrorRawResponseNonJSON(t *testing.T) {
	e := &UpstreamError{Service: "ors", Msg: "bad gateway", StatusCode: 502, Raw: []byte("upstream timeout")}
	if string(e.RawResponse()) != `"upstream timeout"` {
		t.Errorf("raw = %s", e.RawResponse())
	}
	if (&UpstreamError{}).RawResponse() != nil {
		t.Errorf("empty raw should be nil")
	}
}
