package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id, first_name, last_name, email, phone, department, position,
    employee_number, status, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&emp.Department, &emp.Position, &emp.EmployeeNumber, &emp.Status,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Create(ctx context.Context, emp Employee) (Employee, error) {
	created, err := scanEmployee(s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, phone, department, position, employee_number, status)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING`+employeeColumns+`
  `, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Department, emp.Position, emp.EmployeeNumber, emp.Status))
	if err != nil {
		return Employee{}, err
	}
	return created, nil
}

func (s *Store) Update(ctx context.Context, emp Employee) (Employee, error) {
	updated, err := scanEmployee(s.DB.QueryRow(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        email = $3,
        phone = $4,
        department = $5,
        position = $6,
        employee_number = $7,
        status = $8,
        updated_at = now()
    WHERE id = $9
    RETURNING`+employeeColumns+`
  `, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Department, emp.Position, emp.EmployeeNumber, emp.Status, emp.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return updated, nil
}

// Delete removes the employee; meeting participation and payslips cascade at
// the schema level.
func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
