package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/cache2k25/registration-backend/internal/model"
)

// RegistrationRepo provides CRUD operations for registrations and their
// team members.  A registration row owns zero or more team_members rows;
// members keep their submission order via the position column.  All
// timestamp fields are stored in UTC.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

const registrationCols = `id, registration_id, name, contact, email, college, roll_number,
	event_id, event_name, kind, transaction_date, transaction_amount, utr,
	payment_phone, payment_proof, game_id, verified, created_at, updated_at`

// Create persists a new registration together with its team members in a
// single transaction and populates the generated ID and DB-maintained
// timestamps on the provided record.  The registration code must already be
// set; a collision with an existing code is reported as ErrDuplicateRegID
// after the transaction is rolled back.
func (r *RegistrationRepo) Create(ctx context.Context, reg *model.Registration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const ins = `INSERT INTO registrations
		(registration_id, name, contact, email, college, roll_number, event_id,
		 event_name, kind, transaction_date, transaction_amount, utr,
		 payment_phone, payment_proof, game_id, verified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, ins,
		reg.RegistrationID, reg.Name, reg.Contact, reg.Email, reg.College,
		reg.RollNumber, reg.EventID, reg.EventName, reg.Kind,
		reg.TransactionDate, reg.TransactionAmount, reg.UTR, reg.PaymentPhone,
		reg.PaymentProof, reg.GameID, reg.Verified,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateRegID
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)

	if err := insertMembersTx(ctx, tx, reg.ID, reg.TeamMembers); err != nil {
		return err
	}

	// Query back the row to populate the DB-assigned timestamps.
	const sel = `SELECT created_at, updated_at FROM registrations WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, reg.ID).Scan(&reg.CreatedAt, &reg.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// insertMembersTx bulk-inserts team members for one registration inside the
// given transaction.  Passing an empty slice has no effect and returns nil.
func insertMembersTx(ctx context.Context, tx *sql.Tx, regID uint64, members []model.TeamMember) error {
	if len(members) == 0 {
		return nil
	}
	query := `INSERT INTO team_members (registration_id, position, name, contact, email, roll_number, game_id) VALUES `
	args := make([]interface{}, 0, len(members)*7)
	for i, m := range members {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		args = append(args, regID, i, m.Name, m.Contact, m.Email, m.RollNumber, m.GameID)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// Get returns one registration by primary key, team members included, or
// ErrNotFound.
func (r *RegistrationRepo) Get(ctx context.Context, id uint64) (*model.Registration, error) {
	const q = `SELECT ` + registrationCols + ` FROM registrations WHERE id = ?`
	reg, err := scanRegistration(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	members, err := r.membersFor(ctx, []uint64{id})
	if err != nil {
		return nil, err
	}
	reg.TeamMembers = members[id]
	return reg, nil
}

// ListAll returns every registration, newest first.  Rows sharing a
// creation timestamp keep insertion order among themselves (id tie-break).
func (r *RegistrationRepo) ListAll(ctx context.Context) ([]model.Registration, error) {
	const q = `SELECT ` + registrationCols + ` FROM registrations ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]model.Registration, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
		ids = append(ids, reg.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(regs) == 0 {
		return regs, nil
	}

	members, err := r.membersFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range regs {
		regs[i].TeamMembers = members[regs[i].ID]
	}
	return regs, nil
}

// SetVerified updates the verification flag and returns the fresh record.
// Setting the flag to its current value is a no-op success; an unknown key
// yields ErrNotFound.
func (r *RegistrationRepo) SetVerified(ctx context.Context, id uint64, verified bool) (*model.Registration, error) {
	const q = `UPDATE registrations SET verified = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, verified, id); err != nil {
		return nil, err
	}
	// RowsAffected is 0 both for a missing row and an unchanged value, so
	// the re-read decides between the two.
	return r.Get(ctx, id)
}

// membersFor loads team members for the given registration ids, grouped by
// registration and ordered by their stored position.
func (r *RegistrationRepo) membersFor(ctx context.Context, ids []uint64) (map[uint64][]model.TeamMember, error) {
	query := `SELECT registration_id, name, contact, email, roll_number, game_id
		FROM team_members WHERE registration_id IN (`
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += `) ORDER BY registration_id, position`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint64][]model.TeamMember, len(ids))
	for rows.Next() {
		var regID uint64
		var m model.TeamMember
		var gameID sql.NullString
		if err := rows.Scan(&regID, &m.Name, &m.Contact, &m.Email, &m.RollNumber, &gameID); err != nil {
			return nil, err
		}
		if gameID.Valid {
			gid := gameID.String
			m.GameID = &gid
		}
		out[regID] = append(out[regID], m)
	}
	return out, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRegistration(row rowScanner) (*model.Registration, error) {
	var reg model.Registration
	var proof, gameID sql.NullString
	err := row.Scan(
		&reg.ID, &reg.RegistrationID, &reg.Name, &reg.Contact, &reg.Email,
		&reg.College, &reg.RollNumber, &reg.EventID, &reg.EventName, &reg.Kind,
		&reg.TransactionDate, &reg.TransactionAmount, &reg.UTR,
		&reg.PaymentPhone, &proof, &gameID, &reg.Verified,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if proof.Valid {
		p := proof.String
		reg.PaymentProof = &p
	}
	if gameID.Valid {
		g := gameID.String
		reg.GameID = &g
	}
	return &reg, nil
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error (1062).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
