package docgen

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bps3210/simkak/pkg/kak"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

const wordNamespace = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func paragraph(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func row(cells ...string) string {
	var b strings.Builder
	b.WriteString("<w:tr>")
	for _, c := range cells {
		b.WriteString("<w:tc>" + paragraph(c) + "</w:tc>")
	}
	b.WriteString("</w:tr>")
	return b.String()
}

// buildTemplate packs body into a docx. Parts are stored uncompressed with a padded styles part so the
// archive clears the minimum template size.
func buildTemplate(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	parts := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document ` + wordNamespace + `><w:body>` + body + `</w:body></w:document>`},
		{"word/styles.xml", `<w:styles ` + wordNamespace + `><!--` + strings.Repeat("padding ", 150) + `--></w:styles>`},
	}
	for _, p := range parts {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Store})
		require.NoError(t, err)
		_, err = io.WriteString(fw, p.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func documentXML(t *testing.T, content []byte) string {
	t.Helper()
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	for _, f := range archive.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// proposal has a ceiling of 10.000.000 used by 5×1.000.000 and 1×5.000.000.
func proposal() kak.Proposal {
	return kak.Proposal{
		Id:                uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e7f-9a0b1c2d3e4f"),
		JenisKAK:          "Belanja Bahan",
		ProgramPembebanan: "Program Penyediaan dan Pelayanan Informasi Statistik (054.01.GG)",
		Kegiatan:          "Pelayanan dan Pengembangan Diseminasi Informasi Statistik (2897)",
		RincianOutput:     "Data dan Informasi Publik (2897.BMA)",
		KomponenOutput:    "LAPORAN DISEMINASI DAN METADATA STATISTIK (2897.BMA.004)",
		SubKomponen:       "PERSIAPAN (051)",
		AkunBelanja:       "Belanja Barang Operasional Lainnya (521119)",
		PaguAnggaran:      10_000_000,
		TanggalPengajuan:  date(2025, time.March, 1),
		TanggalMulai:      date(2025, time.March, 10),
		TanggalAkhir:      date(2025, time.April, 10),
		CreatedBy:         kak.Creator{Name: "Fungsi IPDS", Role: "IPDS"},
		Items: []kak.LineItem{
			{Id: uuid.New(), Nama: "Kertas A4", Volume: decimal.NewFromInt(5), Satuan: "Paket", HargaSatuan: 1_000_000},
			{Id: uuid.New(), Nama: "Toner", Volume: decimal.NewFromInt(1), Satuan: "Paket", HargaSatuan: 5_000_000},
		},
	}
}

var errNotFound = errors.New("object not found")

type assetStoreStub struct {
	files      map[string][]byte
	profiles   map[string]string
	defaultFor string
	fetches    map[string]int
}

func newAssetStoreStub() *assetStoreStub {
	return &assetStoreStub{files: map[string][]byte{}, profiles: map[string]string{}, fetches: map[string]int{}}
}

func (s *assetStoreStub) Fetch(ctx context.Context, path string) ([]byte, error) {
	s.fetches[path]++
	content, ok := s.files[path]
	if !ok {
		return nil, errNotFound
	}
	return content, nil
}

func (s *assetStoreStub) QueryDefault(ctx context.Context) (string, bool, error) {
	if s.defaultFor == "" {
		return "", false, nil
	}
	return s.defaultFor, true, nil
}

func (s *assetStoreStub) ProfileOf(ctx context.Context, path string) (string, bool) {
	p, ok := s.profiles[path]
	return p, ok
}

type externalStub struct {
	documents map[string][]byte
	calls     map[string]int
}

func newExternalStub() *externalStub {
	return &externalStub{documents: map[string][]byte{}, calls: map[string]int{}}
}

func (e *externalStub) Fetch(ctx context.Context, ref string) ([]byte, error) {
	e.calls[ref]++
	content, ok := e.documents[ref]
	if !ok {
		return nil, errors.New("document host returned non-OK status: 404")
	}
	return content, nil
}
