package kak

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrProposalNotFound = errors.New("proposal not found")

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Proposal, error)
	Get(ctx context.Context, id uuid.UUID) (Proposal, error)
	Create(ctx context.Context, proposal Proposal) (Proposal, error)
	Update(ctx context.Context, proposal Proposal) (Proposal, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const proposalColumns = `id, jenis_kak, program_pembebanan, kegiatan, rincian_output, komponen_output, sub_komponen,
	akun_belanja, pagu_anggaran, created_by_name, created_by_role, tanggal_pengajuan, tanggal_mulai, tanggal_akhir,
	created_at, updated_at`

func (r *RepositoryImpl) List(ctx context.Context, filter Filter) ([]Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM kak
		WHERE ($1 = '' OR jenis_kak = $1)
		  AND ($2 = '' OR jenis_kak ILIKE '%' || $2 || '%' OR program_pembebanan ILIKE '%' || $2 || '%'
		       OR komponen_output ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, filter.Jenis, filter.Query)
	if err != nil {
		err := fmt.Errorf("could not query proposals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	proposals := make([]Proposal, 0)
	index := map[uuid.UUID]int{}
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		index[p.Id] = len(proposals)
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating proposals: %w", err)
		log.Error(err)
		return nil, err
	}
	if len(proposals) == 0 {
		return proposals, nil
	}

	ids := make([]uuid.UUID, 0, len(proposals))
	for _, p := range proposals {
		ids = append(ids, p.Id)
	}
	items, err := r.loadItems(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for kakId, kakItems := range items {
		proposals[index[kakId]].Items = kakItems
	}
	return proposals, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id uuid.UUID) (Proposal, error) {
	row := r.db.QueryRow(ctx, `SELECT `+proposalColumns+` FROM kak WHERE id = $1`, id)
	p, err := scanProposal(row)
	if err != nil {
		return Proposal{}, err
	}
	items, err := r.loadItems(ctx, r.db, []uuid.UUID{id})
	if err != nil {
		return Proposal{}, err
	}
	p.Items = items[id]
	return p, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, p Proposal) (Proposal, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Proposal{}, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO kak (
					id, jenis_kak, program_pembebanan, kegiatan, rincian_output, komponen_output, sub_komponen,
					akun_belanja, pagu_anggaran, pagu_digunakan, created_by_name, created_by_role,
					tanggal_pengajuan, tanggal_mulai, tanggal_akhir, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = tx.Exec(ctx, query,
		p.Id, p.JenisKAK, p.ProgramPembebanan, p.Kegiatan, p.RincianOutput, p.KomponenOutput, p.SubKomponen,
		p.AkunBelanja, p.PaguAnggaran, p.PaguDigunakan(), p.CreatedBy.Name, p.CreatedBy.Role,
		nullDate(p.TanggalPengajuan), nullDate(p.TanggalMulai), nullDate(p.TanggalAkhir), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Proposal{}, err
	}
	if err := insertItems(ctx, tx, p.Id, p.Items); err != nil {
		return Proposal{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Proposal{}, err
	}
	return p, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, p Proposal) (Proposal, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Proposal{}, err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE kak SET
					jenis_kak = $2, program_pembebanan = $3, kegiatan = $4, rincian_output = $5,
					komponen_output = $6, sub_komponen = $7, akun_belanja = $8, pagu_anggaran = $9,
					pagu_digunakan = $10, tanggal_pengajuan = $11, tanggal_mulai = $12, tanggal_akhir = $13,
					updated_at = $14
				WHERE id = $1`
	tag, err := tx.Exec(ctx, query,
		p.Id, p.JenisKAK, p.ProgramPembebanan, p.Kegiatan, p.RincianOutput, p.KomponenOutput, p.SubKomponen,
		p.AkunBelanja, p.PaguAnggaran, p.PaguDigunakan(),
		nullDate(p.TanggalPengajuan), nullDate(p.TanggalMulai), nullDate(p.TanggalAkhir), p.UpdatedAt,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Proposal{}, err
	}
	if tag.RowsAffected() == 0 {
		return Proposal{}, ErrProposalNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM kak_items WHERE kak_id = $1`, p.Id); err != nil {
		err := fmt.Errorf("could not delete proposal items: %v", err)
		log.Error(err)
		return Proposal{}, err
	}
	if err := insertItems(ctx, tx, p.Id, p.Items); err != nil {
		return Proposal{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Proposal{}, err
	}
	return p, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	// items go with ON DELETE CASCADE
	tag, err := r.db.Exec(ctx, `DELETE FROM kak WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *RepositoryImpl) loadItems(ctx context.Context, q querier, kakIds []uuid.UUID) (map[uuid.UUID][]LineItem, error) {
	rows, err := q.Query(ctx, `SELECT kak_id, id, nama, volume, satuan, harga_satuan, subtotal
		FROM kak_items WHERE kak_id = ANY($1) ORDER BY kak_id, position`, kakIds)
	if err != nil {
		err := fmt.Errorf("could not query proposal items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	items := map[uuid.UUID][]LineItem{}
	for rows.Next() {
		var (
			kakId uuid.UUID
			item  LineItem
		)
		if err := rows.Scan(&kakId, &item.Id, &item.Nama, &item.Volume, &item.Satuan, &item.HargaSatuan, &item.Subtotal); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		items[kakId] = append(items[kakId], item)
	}
	return items, rows.Err()
}

func insertItems(ctx context.Context, tx pgx.Tx, kakId uuid.UUID, items []LineItem) error {
	for position, item := range items {
		_, err := tx.Exec(ctx, `INSERT INTO kak_items (id, kak_id, position, nama, volume, satuan, harga_satuan, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			item.Id, kakId, position, item.Nama, item.Volume, item.Satuan, item.HargaSatuan, item.ComputeSubtotal())
		if err != nil {
			err := fmt.Errorf("could not insert proposal item: %v", err)
			log.Error(err)
			return err
		}
	}
	return nil
}

func scanProposal(row pgx.Row) (Proposal, error) {
	var (
		p                       Proposal
		pengajuan, mulai, akhir sql.NullTime
		createdAt, updatedAt    time.Time
	)
	err := row.Scan(
		&p.Id, &p.JenisKAK, &p.ProgramPembebanan, &p.Kegiatan, &p.RincianOutput, &p.KomponenOutput, &p.SubKomponen,
		&p.AkunBelanja, &p.PaguAnggaran, &p.CreatedBy.Name, &p.CreatedBy.Role, &pengajuan, &mulai, &akhir,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Proposal{}, ErrProposalNotFound
		}
		err := fmt.Errorf("error scanning row: %w", err)
		log.Error(err)
		return Proposal{}, err
	}
	p.TanggalPengajuan = pengajuan.Time
	p.TanggalMulai = mulai.Time
	p.TanggalAkhir = akhir.Time
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return p, nil
}

func nullDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
