package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var digits = [...]string{
	"", "satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan", "sembilan", "sepuluh", "sebelas",
}

var titleCaser = cases.Title(language.Indonesian)

// Terbilang spells n in Indonesian words, e.g. 1500 -> "seribu lima ratus".
func Terbilang(n int64) string {
	if n == 0 {
		return "nol"
	}
	words := strings.Join(strings.Fields(spell(magnitude(n))), " ")
	if n < 0 {
		return "minus " + words
	}
	return words
}

// TerbilangRupiah is the title-cased currency form used in documents: "Sepuluh Juta Rupiah".
func TerbilangRupiah(n int64) string {
	return titleCaser.String(Terbilang(n) + " rupiah")
}

func spell(n uint64) string {
	switch {
	case n < 12:
		return digits[n]
	case n < 20:
		return spell(n-10) + " belas"
	case n < 100:
		return spell(n/10) + " puluh " + spell(n%10)
	case n < 200:
		return "seratus " + spell(n-100)
	case n < 1000:
		return spell(n/100) + " ratus " + spell(n%100)
	case n < 2000:
		return "seribu " + spell(n-1000)
	case n < 1_000_000:
		return spell(n/1000) + " ribu " + spell(n%1000)
	case n < 1_000_000_000:
		return spell(n/1_000_000) + " juta " + spell(n%1_000_000)
	case n < 1_000_000_000_000:
		return spell(n/1_000_000_000) + " milyar " + spell(n%1_000_000_000)
	default:
		return spell(n/1_000_000_000_000) + " triliun " + spell(n%1_000_000_000_000)
	}
}

// magnitude is |n| without overflowing on math.MinInt64.
func magnitude(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}
