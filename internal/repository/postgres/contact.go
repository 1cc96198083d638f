package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/contacts-server/internal/model"
)

var _ model.ContactStore = (*ContactRepository)(nil)

const contactColumns = `id, first_name, last_name, email, phone, birthday, additional_info, owner_id, created_at, updated_at`

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{
		db: db,
	}
}

func scanContact(row rowScanner) (model.Contact, error) {
	var c model.Contact
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Birthday,
		&c.AdditionalInfo, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *ContactRepository) Create(ctx context.Context, contact model.Contact) (model.Contact, error) {
	query := `INSERT INTO contacts (first_name, last_name, email, phone, birthday, additional_info, owner_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + contactColumns

	saved, err := scanContact(r.db.QueryRowContext(ctx, query,
		contact.FirstName, contact.LastName, contact.Email, contact.Phone, contact.Birthday,
		contact.AdditionalInfo, contact.OwnerID,
	))
	if err != nil {
		return model.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return saved, nil
}

func (r *ContactRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]model.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepository) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND owner_id = $2`

	c, err := scanContact(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if isNoRows(err) {
			return model.Contact{}, model.ErrNotFound
		}
		return model.Contact{}, fmt.Errorf("failed to get contact: %w", err)
	}

	return c, nil
}

// Update replaces the contact's fields. Rows owned by someone else are reported as not found.
func (r *ContactRepository) Update(ctx context.Context, contact model.Contact) (model.Contact, error) {
	query := `UPDATE contacts
			  SET first_name = $1, last_name = $2, email = $3, phone = $4, birthday = $5, additional_info = $6, updated_at = now()
			  WHERE id = $7 AND owner_id = $8
			  RETURNING ` + contactColumns

	saved, err := scanContact(r.db.QueryRowContext(ctx, query,
		contact.FirstName, contact.LastName, contact.Email, contact.Phone, contact.Birthday,
		contact.AdditionalInfo, contact.ID, contact.OwnerID,
	))
	if err != nil {
		if isNoRows(err) {
			return model.Contact{}, model.ErrNotFound
		}
		return model.Contact{}, fmt.Errorf("failed to update contact: %w", err)
	}

	return saved, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM contacts WHERE id = $1 AND owner_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}

	return nil
}
