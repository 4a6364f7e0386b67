package kak

// Catalog holds the cascading option sets a proposal's selections must come from.
type Catalog struct {
	JenisKAK             []string
	Programs             []string
	KegiatanByProgram    map[string][]string
	SubKomponenByProgram map[string][]string
	RincianByKegiatan    map[string][]string
	KomponenByRincian    map[string][]string
	AkunByJenis          map[string][]string
	Satuan               []string
}

// Selection is the upstream part of a proposal that narrows the options below it.
type Selection struct {
	JenisKAK          string
	ProgramPembebanan string
	Kegiatan          string
	RincianOutput     string
}

// Options lists what may be chosen at every level given the upstream selection.
type Options struct {
	JenisKAK          []string
	ProgramPembebanan []string
	Kegiatan          []string
	SubKomponen       []string
	RincianOutput     []string
	KomponenOutput    []string
	AkunBelanja       []string
	Satuan            []string
}

func (c Catalog) OptionsFor(sel Selection) Options {
	return Options{
		JenisKAK:          c.JenisKAK,
		ProgramPembebanan: c.Programs,
		Kegiatan:          orEmpty(c.KegiatanByProgram[sel.ProgramPembebanan]),
		SubKomponen:       orEmpty(c.SubKomponenByProgram[sel.ProgramPembebanan]),
		RincianOutput:     orEmpty(c.RincianByKegiatan[sel.Kegiatan]),
		KomponenOutput:    orEmpty(c.KomponenByRincian[sel.RincianOutput]),
		AkunBelanja:       orEmpty(c.AkunByJenis[sel.JenisKAK]),
		Satuan:            c.Satuan,
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// DefaultCatalog is the 054.01 programme structure used by the office.
func DefaultCatalog() Catalog {
	return Catalog{
		JenisKAK: []string{
			"Belanja Bahan",
			"Belanja Honor",
			"Belanja Modal",
			"Belanja Paket Meeting",
			"Belanja Perjalanan Dinas",
		},
		Programs: []string{
			"Program Penyediaan dan Pelayanan Informasi Statistik (054.01.GG)",
			"Program Dukungan Manajemen (054.01.WA)",
		},
		KegiatanByProgram: map[string][]string{
			"Program Penyediaan dan Pelayanan Informasi Statistik (054.01.GG)": {
				"Pengembangan dan Analisis Statistik (2896)",
				"Pelayanan dan Pengembangan Diseminasi Informasi Statistik (2897)",
				"Penyediaan dan Pengembangan Statistik Neraca Pengeluaran (2898)",
				"Penyediaan dan Pengembangan Statistik Neraca Produksi (2899)",
				"Pengembangan Metodologi Sensus dan Survei (2900)",
				"Pengembangan Sistem Informasi Statistik (2901)",
				"Penyediaan dan Pengembangan Statistik Distribusi (2902)",
				"Penyediaan dan Pengembangan Statistik Harga (2903)",
				"Penyediaan dan Pengembangan Statistik Industri, Pertambangan dan Penggalian, Energi, dan Konstruksi (2904)",
				"Penyediaan dan Pengembangan Statistik Kependudukan dan Ketenagakerjaan (2905)",
				"Penyediaan dan Pengembangan Statistik Kesejahteraan Rakyat (2906)",
				"Penyediaan dan Pengembangan Statistik Ketahanan Sosial (2907)",
				"Penyediaan dan Pengembangan Statistik Keuangan, Teknologi Informasi, dan Pariwisata (2908)",
				"Penyediaan dan Pengembangan Statistik Peternakan, Perikanan, dan Kehutanan (2909)",
				"Penyediaan dan Pengembangan Statistik Tanaman Pangan, Hortikultura, dan Perkebunan (2910)",
			},
			"Program Dukungan Manajemen (054.01.WA)": {
				"Dukungan Manajemen dan Pelaksanaan Tugas Teknis Lainnya BPS Provinsi (2886)",
			},
		},
		SubKomponenByProgram: map[string][]string{
			"Program Penyediaan dan Pelayanan Informasi Statistik (054.01.GG)": {
				"Dukungan Penyelenggaraan Tugas dan Fungsi Unit (005)",
				"PERSIAPAN (051)",
				"PENGUMPULAN DATA (052)",
				"PENGOLAHAN DAN ANALISIS (053)",
				"DISEMINASI DAN EVALUASI (054)",
				"Pengembangan Infrastruktur dan Layanan Teknologi Informasi dan Komunikasi (056)",
				"Pemutakhiran Kerangka Geospasial dan Muatan Wilkerstat (506)",
				"Updating Direktori Usaha/Perusahaan Ekonomi Lanjutan (516)",
				"Penyusunan Bahan Publisitas (519)",
			},
			"Program Dukungan Manajemen (054.01.WA)": {
				"Tanpa Komponen (051)",
				"Gaji dan Tunjangan (001)",
				"Operasional dan Pemeliharaan Kantor (002)",
			},
		},
		RincianByKegiatan: map[string][]string{
			"Pengembangan dan Analisis Statistik (2896)": {
				"Data dan Informasi Publik (2896.BMA)",
			},
			"Pelayanan dan Pengembangan Diseminasi Informasi Statistik (2897)": {
				"Data dan Informasi Publik (2897.BMA)",
				"Fasilitasi dan Pembinaan Lembaga (2897.QDB)",
			},
			"Penyediaan dan Pengembangan Statistik Neraca Pengeluaran (2898)": {
				"Data dan Informasi Publik (2898.BMA)",
			},
			"Penyediaan dan Pengembangan Statistik Neraca Produksi (2899)": {
				"Data dan Informasi Publik (2899.BMA)",
			},
			"Pengembangan Metodologi Sensus dan Survei (2900)": {
				"Data dan Informasi Publik (2900.BMA)",
			},
			"Pengembangan Sistem Informasi Statistik (2901)": {
				"Sarana Bidang Teknologi Informasi dan Komunikasi (2901.CAN)",
			},
			"Penyediaan dan Pengembangan Statistik Distribusi (2902)": {
				"Data dan Informasi Publik (2902.BMA)",
			},
			"Penyediaan dan Pengembangan Statistik Harga (2903)": {
				"Data dan Informasi Publik (2903.BMA)",
				"Data dan Informasi Publik (2903.QMA)",
			},
			"Penyediaan dan Pengembangan Statistik Industri, Pertambangan dan Penggalian, Energi, dan Konstruksi (2904)": {
				"Data dan Informasi Publik (2904.BMA)",
			},
			"Penyediaan dan Pengembangan Statistik Kependudukan dan Ketenagakerjaan (2905)": {
				"Data dan Informasi Publik (2905.BMA)",
			},
			"Penyediaan dan Pengembangan Statistik Kesejahteraan Rakyat (2906)": {
				"Data dan Informasi Publik (2906.BMA)",
			},
			"Penyediaan dan Pengembangan Statistik Ketahanan Sosial (2907)": {
				"Data dan Informasi Publik (2907.BMA)",
			},
			"Penyediaan dan Pengembangan Statistik Keuangan, Teknologi Informasi, dan Pariwisata (2908)": {
				"Data dan Informasi Publik (2908.BMA)",
			},
			"Penyediaan dan Pengembangan Statistik Peternakan, Perikanan, dan Kehutanan (2909)": {
				"Data dan Informasi Publik (2909.BMA)",
			},
			"Penyediaan dan Pengembangan Statistik Tanaman Pangan, Hortikultura, dan Perkebunan (2910)": {
				"Data dan Informasi Publik (2910.BMA)",
			},
			"Dukungan Manajemen dan Pelaksanaan Tugas Teknis Lainnya BPS Provinsi (2886)": {
				"Data dan Informasi Publik (2886.EBA)",
			},
		},
		KomponenByRincian: map[string][]string{
			"Data dan Informasi Publik (2896.BMA)": {
				"PUBLIKASI/LAPORAN ANALISIS DAN PENGEMBANGAN STATISTIK (2896.BMA.004)",
			},
			"Data dan Informasi Publik (2897.BMA)": {
				"LAPORAN DISEMINASI DAN METADATA STATISTIK (2897.BMA.004)",
			},
			"Fasilitasi dan Pembinaan Lembaga (2897.QDB)": {
				"PENGUATAN PENYELENGGARAAN PEMBINAAN STATISTIK SEKTORAL (2897.QDB.003)",
			},
			"Data dan Informasi Publik (2898.BMA)": {
				"PUBLIKASI/LAPORAN STATISTIK NERACA PENGELUARAN (2898.BMA.007)",
			},
			"Data dan Informasi Publik (2899.BMA)": {
				"PUBLIKASI/LAPORAN NERACA PRODUKSI (2899.BMA.006)",
			},
			"Data dan Informasi Publik (2900.BMA)": {
				"DOKUMEN/LAPORAN PENGEMBANGAN METODOLOGI KEGIATAN STATISTIK (2900.BMA.005)",
			},
			"Sarana Bidang Teknologi Informasi dan Komunikasi (2901.CAN)": {
				"Pengembangan Infrastruktur dan Layanan Teknologi Informasi dan Komunikasi (2901.CAN.004)",
			},
			"Data dan Informasi Publik (2902.BMA)": {
				"PUBLIKASI/LAPORAN STATISTIK DISTRIBUSI (2902.BMA.004)",
				"PUBLIKASI/LAPORAN SENSUS EKONOMI (2902.BMA.006)",
			},
			"Data dan Informasi Publik (2903.BMA)": {
				"PUBLIKASI/LAPORAN STATISTIK HARGA (2903.BMA.009)",
			},
			"Data dan Informasi Publik (2903.QMA)": {
				"PUBLIKASI/LAPORAN PENYUSUNAN INFLASI (2903.QMA.006)",
			},
			"Data dan Informasi Publik (2904.BMA)": {
				"PUBLIKASI/LAPORAN STATISTIK INDUSTRI, PERTAMBANGAN DAN PENGGALIAN, ENERGI, DAN KONSTRUKSI (2904.BMA.006)",
			},
			"Data dan Informasi Publik (2905.BMA)": {
				"PUBLIKASI/LAPORAN SAKERNAS (2905.BMA.004)",
				"PUBLIKASI/LAPORAN SURVEI PENDUDUK ANTAR SENSUS (2905.BMA.006)",
			},
			"Data dan Informasi Publik (2906.BMA)": {
				"PUBLIKASI/LAPORAN STATISTIK KESEJAHTERAAN RAKYAT (2906.BMA.003)",
				"PUBLIKASI/LAPORAN SUSENAS (2906.BMA.006)",
			},
			"Data dan Informasi Publik (2907.BMA)": {
				"PUBLIKASI/LAPORAN STATISTIK KETAHANAN SOSIAL (2907.BMA.006)",
				"PUBLIKASI/LAPORAN PENDATAAN PODES (2907.BMA.008)",
			},
			"Data dan Informasi Publik (2908.BMA)": {
				"PUBLIKASI/LAPORAN STATISTIK KEUANGAN, TEKNOLOGI INFORMASI, DAN PARIWISATA (2908.BMA.004)",
				"PUBLIKASI/LAPORAN STATISTIK E-COMMERCE (2908.BMA.009)",
			},
			"Data dan Informasi Publik (2909.BMA)": {
				"PUBLIKASI/LAPORAN STATISTIK PETERNAKAN, PERIKANAN, DAN KEHUTANAN (2909.BMA.005)",
			},
			"Data dan Informasi Publik (2910.BMA)": {
				"PUBLIKASI/ LAPORAN STATISTIK TANAMAN PANGAN (2910.BMA.007)",
				"PUBLIKASI/LAPORAN STATISTIK HORTIKULTURA DAN PERKEBUNAN (2910.BMA.008)",
			},
			"Data dan Informasi Publik (2886.EBA)": {
				"Layanan BMN (2886.EBA.956)",
				"Layanan Umum (2886.EBA.962)",
				"Layanan Perkantoran (2886.EBA.994)",
			},
		},
		AkunByJenis: map[string][]string{
			"Belanja Honor": {
				"Belanja Honor Output Kegiatan (521213)",
				"Belanja Jasa Profesi (522151)",
				"Belanja Honor Operasional Satuan Kerja (521115)",
			},
			"Belanja Bahan": {
				"Belanja Honor Bahan (521211)",
				"Belanja Barang Persediaan Barang Konsumsi (521811)",
				"Belanja Barang Operasional Lainnya (521119)",
				"Belanja Barang Non Operasional Lainnya (521219)",
				"Belanja Keperluan Perkantoran (521111)",
				"Belanja Pemeliharaan Peralatan dan Mesin (523121)",
			},
			"Belanja Modal": {
				"Belanja Modal Peralatan dan Mesin (532111)",
				"Belanja Modal Gedung dan Bangunan (533111)",
			},
			"Belanja Perjalanan Dinas": {
				"Belanja Perjalanan Dinas Biasa (524111)",
				"Belanja Perjalanan Dinas Dalam Kota (524113)",
			},
			"Belanja Paket Meeting": {
				"Belanja Perjalanan Dinas Paket Meeting Dalam Kota (524114)",
				"Belanja Perjalanan Dinas Paket Meeting Luar Kota (524119)",
			},
		},
		Satuan: []string{
			"BLN",
			"BS",
			"Desa",
			"Dok",
			"liter",
			"Lmbr",
			"M2",
			"OB",
			"OK",
			"OP",
			"OJP",
			"Paket",
			"Pasar",
			"RT",
			"Sls",
			"Stel",
			"Tahun",
		},
	}
}
