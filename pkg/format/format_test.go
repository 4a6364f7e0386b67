package format

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRupiah(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, "Rp\u00a00"},
		{"hundreds", 500, "Rp\u00a0500"},
		{"thousands", 1500, "Rp\u00a01.500"},
		{"ten million", 10_000_000, "Rp\u00a010.000.000"},
		{"negative", -25_000, "-Rp\u00a025.000"},
		{"smallest int64", math.MinInt64, "-Rp\u00a09.223.372.036.854.775.808"},
		{"largest int64", math.MaxInt64, "Rp\u00a09.223.372.036.854.775.807"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rupiah(tt.amount))
		})
	}
}

func TestRupiahDecimal(t *testing.T) {
	t.Run("should round to whole rupiah", func(t *testing.T) {
		assert.Equal(t, "Rp\u00a01.001", RupiahDecimal(decimal.RequireFromString("1000.5")))
		assert.Equal(t, "Rp\u00a01.000", RupiahDecimal(decimal.RequireFromString("1000.49")))
	})
}

func TestQuantity(t *testing.T) {
	assert.Equal(t, "5", Quantity(decimal.NewFromInt(5)))
	assert.Equal(t, "1.200", Quantity(decimal.NewFromInt(1200)))
	assert.Equal(t, "1,5", Quantity(decimal.RequireFromString("1.5")))
}

func TestTerbilang(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "nol"},
		{1, "satu"},
		{10, "sepuluh"},
		{11, "sebelas"},
		{12, "dua belas"},
		{19, "sembilan belas"},
		{20, "dua puluh"},
		{45, "empat puluh lima"},
		{100, "seratus"},
		{111, "seratus sebelas"},
		{250, "dua ratus lima puluh"},
		{1000, "seribu"},
		{1001, "seribu satu"},
		{2000, "dua ribu"},
		{11_000, "sebelas ribu"},
		{100_000, "seratus ribu"},
		{1_500_000, "satu juta lima ratus ribu"},
		{10_000_000, "sepuluh juta"},
		{2_000_000_000, "dua milyar"},
		{3_000_000_000_000, "tiga triliun"},
		{-5, "minus lima"},
		{math.MinInt64, "minus sembilan juta dua ratus dua puluh tiga ribu tiga ratus tujuh puluh dua triliun " +
			"tiga puluh enam milyar delapan ratus lima puluh empat juta tujuh ratus tujuh puluh lima ribu delapan ratus delapan"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Terbilang(tt.n))
		})
	}
}

func TestTerbilangRupiah(t *testing.T) {
	assert.Equal(t, "Sepuluh Juta Rupiah", TerbilangRupiah(10_000_000))
	assert.Equal(t, "Nol Rupiah", TerbilangRupiah(0))
}

func TestLongDate(t *testing.T) {
	t.Run("should render day with two digits and full month name", func(t *testing.T) {
		assert.Equal(t, "05 Maret 2025", LongDate(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, "31 Desember 2024", LongDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("should render zero time as empty", func(t *testing.T) {
		assert.Equal(t, "", LongDate(time.Time{}))
	})
}
