package compression

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const payload = `{"colormaps":{}}`

func TestCompressRoundTrip(t *testing.T) {
	for _, f := range []Format{None, Gzip, Xz} {
		t.Run(f.String(), func(t *testing.T) {
			packed, err := Compress([]byte(payload), f)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if got := Detect("", packed); got != f {
				t.Errorf("Detect by magic = %s, want %s", got, f)
			}
			out, err := Decompress(packed, f)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if string(out) != payload {
				t.Errorf("Decompress = %q, want %q", out, payload)
			}
		})
	}
}

func TestCompressBzip2Unsupported(t *testing.T) {
	if _, err := Compress([]byte(payload), Bzip2); err == nil {
		t.Error("Compress(bzip2) succeeded")
	}
}

func TestDecompressBzip2(t *testing.T) {
	// "hello\n" compressed with bzip2 -9.
	data := []byte{
		0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0xc1, 0xc0,
		0x80, 0xe2, 0x00, 0x00, 0x01, 0x41, 0x00, 0x00, 0x10, 0x02, 0x44, 0xa0,
		0x00, 0x30, 0xcd, 0x00, 0xc3, 0x46, 0x29, 0x97, 0x17, 0x72, 0x45, 0x38,
		0x50, 0x90, 0xc1, 0xc0, 0x80, 0xe2,
	}
	if got := Detect("x", data); got != Bzip2 {
		t.Fatalf("Detect = %s, want bz2", got)
	}
	out, err := Decompress(data, Bzip2)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if string(out) != "hello\n" {
		t.Errorf("Decompress = %q", out)
	}
}

func TestFormatFromName(t *testing.T) {
	tests := map[string]Format{
		"pack.json":     None,
		"pack.json.gz":  Gzip,
		"pack.json.XZ":  Xz,
		"pack.json.bz2": Bzip2,
	}
	for name, want := range tests {
		if got := FormatFromName(name); got != want {
			t.Errorf("FormatFromName(%s) = %s, want %s", name, got, want)
		}
	}
	if got := TrimExt("pack.json.xz"); got != "pack.json" {
		t.Errorf("TrimExt = %s", got)
	}
	if got := TrimExt("pack.json"); got != "pack.json" {
		t.Errorf("TrimExt = %s", got)
	}
}

func tarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		body := files[name]
		if err := tw.WriteHeader(&tar.Header{Name: name, Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg}); err != nil {
			t.Fatalf("WriteHeader: %v", err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar close: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtractBundleTarGz(t *testing.T) {
	data := tarGz(t, map[string]string{
		"./cell_types/immune.json": payload,
		"README.md":                "ignored",
	})

	dest := t.TempDir()
	written, err := ExtractBundle(data, "packs.tar.gz", dest, func(rel string) bool {
		return strings.HasSuffix(rel, ".json")
	})
	if err != nil {
		t.Fatalf("ExtractBundle: %v", err)
	}
	if diff := cmp.Diff([]string{"cell_types/immune.json"}, written); diff != "" {
		t.Errorf("written mismatch (-want +got):\n%s", diff)
	}

	got, err := os.ReadFile(filepath.Join(dest, "cell_types", "immune.json"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != payload {
		t.Errorf("extracted %q, want %q", got, payload)
	}
	if _, err := os.Stat(filepath.Join(dest, "README.md")); !os.IsNotExist(err) {
		t.Error("filtered member was extracted")
	}
}

func TestExtractBundleRejectsTraversal(t *testing.T) {
	data := tarGz(t, map[string]string{"../evil.json": payload})

	dest := t.TempDir()
	if _, err := ExtractBundle(data, "evil.tgz", dest, nil); err == nil {
		t.Fatal("ExtractBundle accepted a traversal member")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dest), "evil.json")); !os.IsNotExist(err) {
		t.Error("traversal member written outside destination")
	}
}

func TestExtractBundleZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("sequence/nucleotides.json")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte(payload)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	dest := t.TempDir()
	written, err := ExtractBundle(buf.Bytes(), "packs.zip", dest, nil)
	if err != nil {
		t.Fatalf("ExtractBundle: %v", err)
	}
	if diff := cmp.Diff([]string{"sequence/nucleotides.json"}, written); diff != "" {
		t.Errorf("written mismatch (-want +got):\n%s", diff)
	}
}

func TestIsBundle(t *testing.T) {
	for name, want := range map[string]bool{
		"packs.tar.gz":  true,
		"packs.TGZ":     true,
		"packs.tar.xz":  true,
		"packs.tar.bz2": true,
		"packs.zip":     true,
		"pack.json.gz":  false,
		"pack.json":     false,
	} {
		if got := IsBundle(name); got != want {
			t.Errorf("IsBundle(%s) = %v, want %v", name, got, want)
		}
	}
	if _, err := ExtractBundle(nil, "pack.json", t.TempDir(), nil); err == nil {
		t.Error("ExtractBundle accepted a non-archive name")
	}
}
