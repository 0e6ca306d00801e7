package services

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDocumentStoredNameDeterministic(t *testing.T) {
	id := uuid.MustParse("2b7f3f1e-9c1a-4d5b-8a6f-0123456789ab")
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	first := DocumentStoredName(id, "contract.pdf", ts)
	second := DocumentStoredName(id, "contract.pdf", ts)
	if first != second {
		t.Fatalf("identical inputs produced different names: %q vs %q", first, second)
	}
}

func TestDocumentStoredNameFormat(t *testing.T) {
	name := DocumentStoredName(uuid.New(), "Contract.PDF", time.Now())

	pattern := regexp.MustCompile(`^[0-9a-f]{64}\.pdf$`)
	if !pattern.MatchString(name) {
		t.Fatalf("stored name %q does not match hex-hash.ext format", name)
	}
	if strings.Contains(name, "Contract") {
		t.Fatalf("stored name %q leaks the original filename", name)
	}
}

func TestDocumentStoredNameInputSensitivity(t *testing.T) {
	id := uuid.MustParse("2b7f3f1e-9c1a-4d5b-8a6f-0123456789ab")
	otherID := uuid.MustParse("3c8f4f2f-0d2b-4e6c-9b70-123456789abc")
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	base := DocumentStoredName(id, "contract.pdf", ts)

	if got := DocumentStoredName(otherID, "contract.pdf", ts); got == base {
		t.Fatalf("changing the upload id did not change the stored name")
	}
	if got := DocumentStoredName(id, "invoice.pdf", ts); got == base {
		t.Fatalf("changing the filename did not change the stored name")
	}
	if got := DocumentStoredName(id, "contract.pdf", ts.Add(time.Nanosecond)); got == base {
		t.Fatalf("changing the timestamp did not change the stored name")
	}
}

func TestPhotoStoredName(t *testing.T) {
	first := PhotoStoredName("balcony.JPG")
	second := PhotoStoredName("balcony.JPG")

	if first == second {
		t.Fatalf("photo stored names should be unique per call, got %q twice", first)
	}
	if !strings.HasSuffix(first, ".jpg") {
		t.Fatalf("expected lowercased extension, got %q", first)
	}

	prefix := strings.TrimSuffix(first, ".jpg")
	if _, err := uuid.Parse(prefix); err != nil {
		t.Fatalf("expected uuid prefix in %q: %v", first, err)
	}
}

func TestExtensionOf(t *testing.T) {
	cases := map[string]string{
		"contract.pdf":   "pdf",
		"Contract.PDF":   "pdf",
		"archive.tar.gz": "gz",
		"noextension":    "",
	}
	for input, expected := range cases {
		if got := extensionOf(input); got != expected {
			t.Errorf("extensionOf(%q) = %q, expected %q", input, got, expected)
		}
	}
}
