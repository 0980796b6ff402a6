package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.SupportTicketRepository = (*SupportTicketRepo)(nil)

const ticketColumns = `id, company_id, user_id, subject, status, priority, created_at, updated_at`

// SupportTicketRepo implementación de SupportTicketRepository.
// Los métodos *All no filtran por empresa: son la vista del super-admin.
type SupportTicketRepo struct {
	q Querier
}

// NewSupportTicketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupportTicketRepository(q Querier) *SupportTicketRepo {
	return &SupportTicketRepo{q: q}
}

// Create inserta el ticket con su primer mensaje.
func (r *SupportTicketRepo) Create(t *entity.SupportTicket, first *entity.TicketMessage) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO support_tickets (`+ticketColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.CompanyID, t.UserID, t.Subject, t.Status, t.Priority, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert support ticket: %w", err)
	}
	if first != nil {
		if err := r.AddMessage(first); err != nil {
			return err
		}
	}
	return nil
}

func scanTicket(row pgx.Row) (*entity.SupportTicket, error) {
	var t entity.SupportTicket
	err := row.Scan(&t.ID, &t.CompanyID, &t.UserID, &t.Subject, &t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan support ticket: %w", err)
	}
	return &t, nil
}

// GetByID obtiene el ticket dentro de la empresa.
func (r *SupportTicketRepo) GetByID(companyID, id string) (*entity.SupportTicket, error) {
	return scanTicket(r.q.QueryRow(context.Background(),
		`SELECT `+ticketColumns+` FROM support_tickets WHERE company_id = $1 AND id = $2`, companyID, id))
}

// GetByIDAll obtiene el ticket sin filtro de empresa (super-admin).
func (r *SupportTicketRepo) GetByIDAll(id string) (*entity.SupportTicket, error) {
	return scanTicket(r.q.QueryRow(context.Background(),
		`SELECT `+ticketColumns+` FROM support_tickets WHERE id = $1`, id))
}

func (r *SupportTicketRepo) scanTickets(rows pgx.Rows) ([]*entity.SupportTicket, error) {
	defer rows.Close()
	var list []*entity.SupportTicket
	for rows.Next() {
		var t entity.SupportTicket
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.UserID, &t.Subject, &t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan support ticket: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ListByCompany lista tickets de la empresa; status vacío = todos.
func (r *SupportTicketRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.SupportTicket, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+ticketColumns+` FROM support_tickets
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY updated_at DESC LIMIT $3 OFFSET $4`,
		companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list support tickets: %w", err)
	}
	return r.scanTickets(rows)
}

// ListAll lista la cola global de tickets (super-admin).
func (r *SupportTicketRepo) ListAll(status string, limit, offset int) ([]*entity.SupportTicket, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+ticketColumns+` FROM support_tickets
		WHERE ($1 = '' OR status = $1)
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list all support tickets: %w", err)
	}
	return r.scanTickets(rows)
}

// AddMessage agrega un mensaje al hilo y refresca updated_at del ticket.
func (r *SupportTicketRepo) AddMessage(m *entity.TicketMessage) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO ticket_messages (id, ticket_id, author_type, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.TicketID, m.AuthorType, m.AuthorID, m.Body, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket message: %w", err)
	}
	_, err = r.q.Exec(ctx,
		`UPDATE support_tickets SET updated_at = $2 WHERE id = $1`, m.TicketID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("touch support ticket: %w", err)
	}
	return nil
}

// ListMessages lista el hilo del ticket en orden cronológico.
func (r *SupportTicketRepo) ListMessages(ticketID string) ([]*entity.TicketMessage, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, ticket_id, author_type, author_id, body, created_at
		FROM ticket_messages WHERE ticket_id = $1 ORDER BY created_at`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list ticket messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.TicketMessage
	for rows.Next() {
		var m entity.TicketMessage
		if err := rows.Scan(&m.ID, &m.TicketID, &m.AuthorType, &m.AuthorID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del ticket dentro de la empresa.
func (r *SupportTicketRepo) UpdateStatus(companyID, id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE support_tickets SET status = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`,
		companyID, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatusAll cambia el estado sin filtro de empresa (super-admin).
func (r *SupportTicketRepo) UpdateStatusAll(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE support_tickets SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
