package meeting

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const meetingSelect = `
    SELECT m.id, m.title, m.description, m.meeting_date::text, m.time_range, m.location,
           COALESCE(ARRAY_AGG(mp.employee_id::bigint ORDER BY mp.employee_id)
                    FILTER (WHERE mp.employee_id IS NOT NULL), '{}'),
           m.created_at, m.updated_at
    FROM meetings m
    LEFT JOIN meeting_participants mp ON mp.meeting_id = m.id`

func scanMeeting(row pgx.Row) (Meeting, error) {
	var m Meeting
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.Date, &m.Time, &m.Location,
		&m.Participants, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (s *Store) List(ctx context.Context) ([]Meeting, error) {
	return s.queryMeetings(ctx, meetingSelect+`
    GROUP BY m.id
    ORDER BY m.id
  `)
}

// Upcoming returns meetings dated today or later, soonest first, capped at
// limit.
func (s *Store) Upcoming(ctx context.Context, limit int) ([]Meeting, error) {
	return s.queryMeetings(ctx, meetingSelect+`
    WHERE m.meeting_date >= CURRENT_DATE
    GROUP BY m.id
    ORDER BY m.meeting_date, m.id
    LIMIT $1
  `, limit)
}

func (s *Store) queryMeetings(ctx context.Context, sql string, args ...any) ([]Meeting, error) {
	rows, err := s.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Meeting{}
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Create inserts the meeting and its participant rows in one transaction.
func (s *Store) Create(ctx context.Context, m Meeting) (Meeting, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Meeting{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var created Meeting
	err = tx.QueryRow(ctx, `
    INSERT INTO meetings (title, description, meeting_date, time_range, location)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, title, description, meeting_date::text, time_range, location, created_at, updated_at
  `, m.Title, m.Description, m.Date, m.Time, m.Location).Scan(
		&created.ID, &created.Title, &created.Description, &created.Date,
		&created.Time, &created.Location, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return Meeting{}, err
	}

	created.Participants = []int64{}
	for _, employeeID := range m.Participants {
		if _, err := tx.Exec(ctx, `
      INSERT INTO meeting_participants (meeting_id, employee_id)
      VALUES ($1, $2)
      ON CONFLICT DO NOTHING
    `, created.ID, employeeID); err != nil {
			return Meeting{}, err
		}
		created.Participants = append(created.Participants, employeeID)
	}

	if err := tx.Commit(ctx); err != nil {
		return Meeting{}, err
	}
	return created, nil
}
