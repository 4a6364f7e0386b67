package docgen

import (
	"testing"
	"time"

	"github.com/bps3210/simkak/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapper_Map(t *testing.T) {
	mapper := NewMapper()

	t.Run("should map proposal with camel keys", func(t *testing.T) {
		// when
		bag := mapper.Map(proposal(), CamelV1)

		// then
		assert.Equal(t, "Belanja Bahan", bag["jenisKAK"])
		assert.Equal(t, format.Rupiah(10_000_000), bag["paguAnggaran"])
		assert.Equal(t, "Sepuluh Juta Rupiah", bag["paguAnggaranTerbilang"])
		assert.Equal(t, format.Rupiah(10_000_000), bag["paguDigunakan"])
		assert.Equal(t, format.Rupiah(0), bag["sisaPagu"])
		assert.Equal(t, format.Rupiah(10_000_000), bag["total"])
		assert.Equal(t, "01 Maret 2025", bag["tanggalPengajuan"])
		assert.Equal(t, "Fungsi IPDS", bag["createdByName"])
		assert.Equal(t, "IPDS", bag["createdByRole"])

		items, ok := bag["items"].([]map[string]any)
		require.True(t, ok)
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[0]["no"])
		assert.Equal(t, "Kertas A4", items[0]["nama"])
		assert.Equal(t, "5", items[0]["volume"])
		assert.Equal(t, format.Rupiah(1_000_000), items[0]["hargaSatuan"])
		assert.Equal(t, format.Rupiah(5_000_000), items[0]["subtotal"])
		assert.Equal(t, 2, items[1]["no"])
	})

	t.Run("should spell keys with snake profile", func(t *testing.T) {
		// when
		bag := mapper.Map(proposal(), SnakeV1)

		// then
		assert.Equal(t, "Belanja Bahan", bag["jenis_kak"])
		assert.Equal(t, "Sepuluh Juta Rupiah", bag["total_terbilang"])
		assert.NotContains(t, bag, "jenisKAK")
		items := bag["items"].([]map[string]any)
		assert.Equal(t, format.Rupiah(1_000_000), items[0]["harga_satuan"])
	})

	t.Run("should map proposal without items", func(t *testing.T) {
		// given
		p := proposal()
		p.Items = nil

		// when
		bag := mapper.Map(p, CamelV1)

		// then
		assert.Equal(t, []map[string]any{}, bag["items"])
		assert.Equal(t, format.Rupiah(0), bag["total"])
		assert.Equal(t, "Nol Rupiah", bag["totalTerbilang"])
		assert.Equal(t, format.Rupiah(10_000_000), bag["sisaPagu"])
	})

	t.Run("should keep empty values instead of failing", func(t *testing.T) {
		// given
		p := proposal()
		p.SubKomponen = ""
		p.TanggalAkhir = time.Time{}

		// when
		bag := mapper.Map(p, CamelV1)

		// then
		assert.Equal(t, "", bag["subKomponen"])
		assert.Equal(t, "", bag["tanggalAkhir"])
		assert.Len(t, bag, len(proposalFields))
	})
}
