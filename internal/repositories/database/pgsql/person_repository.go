package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/domain"
	portsrepo "github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/core/ports/repositories"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/models"
	"github.com/manancialsaopedro-lang/App-Manancial-sub000/internal/utils/mapping"
)

type PgxPersonRepository struct {
	db querier
}

func newPgxPersonRepository(db querier) portsrepo.PersonRepositoryFacade {
	return &PgxPersonRepository{db: db}
}

var _ portsrepo.PersonRepositoryFacade = (*PgxPersonRepository)(nil)

const personColumns = `person_id, name, total_price, amount_paid, payment_status, last_payment_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPerson(row pgx.Row) (models.Person, error) {
	var m models.Person
	err := row.Scan(
		&m.PersonID,
		&m.Name,
		&m.TotalPrice,
		&m.AmountPaid,
		&m.PaymentStatus,
		&m.LastPaymentDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePerson inserts a new attendee.
func (r *PgxPersonRepository) SavePerson(ctx context.Context, person domain.Person) error {
	m := mapping.ToModelPerson(person)
	query := `
		INSERT INTO people (` + personColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.PersonID, m.Name, m.TotalPrice, m.AmountPaid, m.PaymentStatus, m.LastPaymentDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to save person %s", m.PersonID)
	}
	return nil
}

// FindPersonByID retrieves an attendee by ID.
func (r *PgxPersonRepository) FindPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE person_id = $1;`
	m, err := scanPerson(r.db.QueryRow(ctx, query, personID))
	if err != nil {
		return nil, dbError(err, "failed to find person %s", personID)
	}
	d := mapping.ToDomainPerson(m)
	return &d, nil
}

// ListPeople lists attendees by name.
func (r *PgxPersonRepository) ListPeople(ctx context.Context) ([]domain.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people ORDER BY name, person_id;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, dbError(err, "failed to list people")
	}
	defer rows.Close()

	people := []domain.Person{}
	for rows.Next() {
		m, err := scanPerson(rows)
		if err != nil {
			return nil, dbError(err, "failed to scan person row")
		}
		people = append(people, mapping.ToDomainPerson(m))
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "error iterating person rows")
	}
	return people, nil
}

// UpdatePerson rewrites an attendee row.
func (r *PgxPersonRepository) UpdatePerson(ctx context.Context, person domain.Person) error {
	m := mapping.ToModelPerson(person)
	query := `
		UPDATE people
		SET name = $2, total_price = $3, amount_paid = $4, payment_status = $5, last_payment_date = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE person_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.PersonID, m.Name, m.TotalPrice, m.AmountPaid, m.PaymentStatus, m.LastPaymentDate,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to update person %s", m.PersonID)
	}
	return expectOneRow(tag, "person", m.PersonID)
}

// DeletePerson removes an attendee.
func (r *PgxPersonRepository) DeletePerson(ctx context.Context, personID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM people WHERE person_id = $1;`, personID)
	if err != nil {
		return dbError(err, "failed to delete person %s", personID)
	}
	return expectOneRow(tag, "person", personID)
}
