package pdfmeta

// Notes:
// - minimalPDF builds a small classic-xref PDF with exact byte offsets so
//   pdfcpu can parse it without a browser in the loop.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func minimalPDF(t *testing.T, pages int) []byte {
	t.Helper()

	var objs []string
	objs = append(objs, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, pages)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	objs = append(objs, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for range pages {
		objs = append(objs, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>")
	}
	objs = append(objs, "<< /Producer (test) >>")
	infoNum := len(objs)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, infoNum, xref)

	return buf.Bytes()
}

func TestProcessor_PageCount(t *testing.T) {
	t.Parallel()

	p := NewProcessor()

	for _, n := range []int{1, 3} {
		got, err := p.PageCount(minimalPDF(t, n))
		if err != nil {
			t.Fatalf("PageCount() error = %v", err)
		}
		if got != n {
			t.Errorf("PageCount() = %d, want %d", got, n)
		}
	}
}

func TestProcessor_PageCount_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"not a pdf", []byte("<html></html>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewProcessor().PageCount(tt.input)
			if !errors.Is(err, ErrInvalidPDF) {
				t.Errorf("error = %v, want ErrInvalidPDF", err)
			}
		})
	}
}

func TestProcessor_Stamp(t *testing.T) {
	t.Parallel()

	p := NewProcessor()
	in := minimalPDF(t, 2)

	out, pages, err := p.Stamp(context.Background(), in, Properties{
		Subject:   "Mathematics",
		Chapter:   "Algebra",
		Generator: "go-booklet",
	})
	if err != nil {
		t.Fatalf("Stamp() error = %v", err)
	}
	if pages != 2 {
		t.Errorf("pages = %d, want 2", pages)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
	for _, key := range []string{KeySubject, KeyChapter, KeyGenerator} {
		if !bytes.Contains(out, []byte("/"+key)) {
			t.Errorf("output missing property %s", key)
		}
	}

	again, err := p.PageCount(out)
	if err != nil {
		t.Fatalf("stamped PDF does not parse: %v", err)
	}
	if again != 2 {
		t.Errorf("stamped page count = %d, want 2", again)
	}

	props, err := p.ReadProperties(out)
	if err != nil {
		t.Fatalf("ReadProperties() error = %v", err)
	}
	if props[KeySubject] != "Mathematics" || props[KeyChapter] != "Algebra" {
		t.Errorf("ReadProperties() = %v", props)
	}
}

func TestProcessor_ReadProperties_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := NewProcessor().ReadProperties([]byte("not a pdf")); !errors.Is(err, ErrInvalidPDF) {
		t.Errorf("error = %v, want ErrInvalidPDF", err)
	}
}

func TestProcessor_Stamp_EmptyPropertiesReturnsInput(t *testing.T) {
	t.Parallel()

	in := minimalPDF(t, 1)
	out, pages, err := NewProcessor().Stamp(context.Background(), in, Properties{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, in) {
		t.Error("expected input returned unchanged")
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}
}

func TestProcessor_Stamp_Errors(t *testing.T) {
	t.Parallel()

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := NewProcessor().Stamp(ctx, minimalPDF(t, 1), Properties{Subject: "s"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		t.Parallel()

		_, _, err := NewProcessor().Stamp(context.Background(), []byte("nope"), Properties{Subject: "s"})
		if !errors.Is(err, ErrInvalidPDF) {
			t.Errorf("error = %v, want ErrInvalidPDF", err)
		}
	})
}

func TestProperties_toMap(t *testing.T) {
	t.Parallel()

	m := Properties{Subject: "s"}.toMap()
	if len(m) != 1 || m[KeySubject] != "s" {
		t.Errorf("toMap() = %v", m)
	}
}
