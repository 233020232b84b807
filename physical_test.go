package pardll

import "testing"

func TestPhysicalLayerClaimRejectsDoubleRegistration(t *testing.T) {
	m := NewPerfectMedium(&NullLogger{})
	phy := NewPhysicalLayer(m)

	if err := phy.claim(); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if err := phy.claim(); err != ErrDoubleRegistration {
		t.Fatalf("expected ErrDoubleRegistration, got %v", err)
	}
}

func TestPhysicalLayerSendRetrieveIsFIFO(t *testing.T) {
	m := NewPerfectMedium(&NullLogger{})
	a := NewPhysicalLayer(m)
	b := NewPhysicalLayer(m)

	bits := []bool{true, true, false, true, false}
	for _, bit := range bits {
		if err := a.Send(bit); err != nil {
			t.Fatalf("Send: %v", err)
		}
	}
	for i, want := range bits {
		got, ok := b.Retrieve()
		if !ok {
			t.Fatalf("bit %d: expected a bit, got none", i)
		}
		if got != want {
			t.Fatalf("bit %d: got %v, want %v", i, got, want)
		}
	}
}

func TestPhysicalLayerNameIsUnique(t *testing.T) {
	m := NewPerfectMedium(&NullLogger{})
	a := NewPhysicalLayer(m)
	b := NewPhysicalLayer(m)
	if a.Name() == b.Name() {
		t.Fatalf("expected distinct names, both got %q", a.Name())
	}
}

func TestPhysicalLayerTranscriptCanBeDetached(t *testing.T) {
	m := NewPerfectMedium(&NullLogger{})
	a := NewPhysicalLayer(m)
	_ = NewPhysicalLayer(m)

	tw := NewTranscriptWriter(t.TempDir()+"/transcript.log", &NullLogger{})
	defer tw.Close()

	a.SetTranscript(tw)
	if err := a.Send(true); err != nil {
		t.Fatalf("Send: %v", err)
	}
	a.SetTranscript(nil)
	if err := a.Send(false); err != nil {
		t.Fatalf("Send: %v", err)
	}
}
