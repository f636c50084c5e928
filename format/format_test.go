package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{TreeFormat, VRMLFormat, JSONFormat, YAMLFormat} {
		var back Format
		if err := back.UnmarshalText([]byte(f.String())); err != nil || back != f {
			t.Errorf("%s: got %s %v", f, back, err)
		}
	}
	if f, err := ParseFormat("wrl"); err != nil || !f.IsVRML() {
		t.Errorf("wrl: %s %v", f, err)
	}
	if _, err := ParseFormat("tony"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("tony: %v", err)
	}
}
