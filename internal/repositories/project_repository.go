package repositories

import (
	"context"
	"fmt"
	"time"

	"barangay-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	DB *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

const projectColumns = `id, name, owner, deadline, status, published,
	 COALESCE(remarks, '') as remarks, completed_at, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Owner, &p.Deadline, &p.Status, &p.Published,
		&p.Remarks, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO projects(name, owner, deadline, status, published)
         VALUES($1, $2, $3, $4, false)
         RETURNING id, created_at, updated_at`,
		p.Name, p.Owner, p.Deadline, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepository) Get(ctx context.Context, id int) (*models.Project, error) {
	p, err := scanProject(r.DB.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	files, err := r.ListFiles(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Files = files
	return p, nil
}

// List returns a page of projects. Sorting is restricted to known columns
// to keep the ORDER BY clause safe.
func (r *ProjectRepository) List(ctx context.Context, q *models.ProjectListQuery) ([]*models.Project, int, error) {
	orderBy := "deadline ASC"
	switch q.SortBy {
	case "name":
		orderBy = "name ASC"
	case "created":
		orderBy = "created_at DESC"
	}

	where := ""
	args := []any{}
	if q.Status != "" {
		where = "WHERE status=$1"
		args = append(args, q.Status)
	}

	var total int
	if err := r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM projects %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (q.Page - 1) * q.PageSize
	args = append(args, q.PageSize, offset)
	rows, err := r.DB.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM projects %s ORDER BY %s LIMIT $%d OFFSET $%d`,
			projectColumns, where, orderBy, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE projects SET name=$1, owner=$2, deadline=$3, status=$4, remarks=$5,
		 updated_at=CURRENT_TIMESTAMP
         WHERE id=$6`,
		p.Name, p.Owner, p.Deadline, p.Status, p.Remarks, p.ID)
	return err
}

func (r *ProjectRepository) SetPublished(ctx context.Context, id int, published bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE projects SET published=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		published, id)
	return err
}

func (r *ProjectRepository) Complete(ctx context.Context, id int, remarks string, completedAt time.Time) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE projects SET status=$1, remarks=$2, completed_at=$3, updated_at=CURRENT_TIMESTAMP
		 WHERE id=$4`,
		models.ProjectStatusCompleted, remarks, completedAt, id)
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	return err
}

func (r *ProjectRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT status, COUNT(*) FROM projects GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// AddFile records an uploaded file descriptor against a project
func (r *ProjectRepository) AddFile(ctx context.Context, f *models.ProjectFile) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO project_files(project_id, file_name, object_key, size, content_type, url)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, uploaded_at`,
		f.ProjectID, f.FileName, f.ObjectKey, f.Size, f.ContentType, f.URL,
	).Scan(&f.ID, &f.UploadedAt)
}

func (r *ProjectRepository) ListFiles(ctx context.Context, projectID int) ([]*models.ProjectFile, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, project_id, file_name, object_key, size, content_type, url, uploaded_at
         FROM project_files WHERE project_id=$1 ORDER BY uploaded_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*models.ProjectFile
	for rows.Next() {
		var f models.ProjectFile
		err := rows.Scan(&f.ID, &f.ProjectID, &f.FileName, &f.ObjectKey,
			&f.Size, &f.ContentType, &f.URL, &f.UploadedAt)
		if err != nil {
			return nil, err
		}
		files = append(files, &f)
	}
	return files, rows.Err()
}

// AddReaction records a single reaction against a project
func (r *ProjectRepository) AddReaction(ctx context.Context, projectID int, reactionType string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO project_reactions(project_id, type) VALUES($1, $2)`,
		projectID, reactionType)
	return err
}

// ReactionCounts aggregates reactions for a project by type
func (r *ProjectRepository) ReactionCounts(ctx context.Context, projectID int) (*models.ReactionCounts, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT type, COUNT(*) FROM project_reactions WHERE project_id=$1 GROUP BY type`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rc := &models.ReactionCounts{ProjectID: projectID, Counts: make(map[string]int)}
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		rc.Counts[t] = n
		rc.Total += n
	}
	return rc, rows.Err()
}
