package repositories

import (
	"context"
	"fmt"
	"strings"

	"shopmart/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	BulkCreate(ctx context.Context, categories []*models.Category) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	List(ctx context.Context, limit, offset int) ([]*models.Category, error)
	UpdateByID(ctx context.Context, id int64, patch *models.CategoryPatch) (*models.Category, error)
	UpsertByName(ctx context.Context, input *models.CategoryInput) (*models.Category, error)
	UpdateManyByNames(ctx context.Context, names []string, patch *models.CategoryPatch) (int64, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	CreateWithProducts(ctx context.Context, category *models.Category, products []*models.Product) error
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = "id, name, slug, parent_id, is_active, level, created_at, updated_at"

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, parent_id, is_active, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, category.Name, category.Slug, category.ParentID,
		category.IsActive, category.Level).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

// BulkCreate inserts categories in one statement, silently skipping rows that
// collide with an existing unique name. Returns the number actually inserted;
// skipped rows are not reported individually.
func (r *categoryRepo) BulkCreate(ctx context.Context, categories []*models.Category) (int64, error) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO categories (name, slug, parent_id, is_active, level, created_at, updated_at) VALUES ")
	args := make([]any, 0, len(categories)*5)
	for i, c := range categories {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, NOW(), NOW())", n+1, n+2, n+3, n+4, n+5)
		args = append(args, c.Name, c.Slug, c.ParentID, c.IsActive, c.Level)
	}
	sb.WriteString(" ON CONFLICT (name) DO NOTHING")

	tag, err := r.db.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	category := &models.Category{}
	query := `
		SELECT id, name, slug, parent_id, is_active, level, created_at, updated_at
		FROM categories
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name, &category.Slug,
		&category.ParentID, &category.IsActive, &category.Level, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) List(ctx context.Context, limit, offset int) ([]*models.Category, error) {
	query := `
		SELECT id, name, slug, parent_id, is_active, level, created_at, updated_at
		FROM categories
		ORDER BY level ASC, name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.ParentID,
			&category.IsActive, &category.Level, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// UpdateByID applies only the non-nil patch fields. Returns pgx.ErrNoRows
// (via QueryRow) when no category has the given id.
func (r *categoryRepo) UpdateByID(ctx context.Context, id int64, patch *models.CategoryPatch) (*models.Category, error) {
	set, args := buildCategorySet(patch)
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE categories
		SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(set, ", "), len(args), categoryColumns)

	category := &models.Category{}
	err := r.db.QueryRow(ctx, query, args...).Scan(&category.ID, &category.Name, &category.Slug,
		&category.ParentID, &category.IsActive, &category.Level, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// UpsertByName creates the category if the name is absent, otherwise updates
// the existing row with the fields the caller actually supplied: omitted
// fields are left unchanged, not re-defaulted. Name and slug are deliberately
// not part of the conflict update: the lookup key stays immutable via this
// path.
func (r *categoryRepo) UpsertByName(ctx context.Context, input *models.CategoryInput) (*models.Category, error) {
	var set []string
	if input.ParentID != nil {
		set = append(set, "parent_id = EXCLUDED.parent_id")
	}
	if input.IsActive != nil {
		set = append(set, "is_active = EXCLUDED.is_active")
	}
	if input.Level != nil {
		set = append(set, "level = EXCLUDED.level")
	}
	set = append(set, "updated_at = NOW()")

	category := input.Category()
	query := fmt.Sprintf(`
		INSERT INTO categories (name, slug, parent_id, is_active, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE
		SET %s
		RETURNING id, name, slug, parent_id, is_active, level, created_at, updated_at
	`, strings.Join(set, ", "))

	result := &models.Category{}
	err := r.db.QueryRow(ctx, query, category.Name, category.Slug, category.ParentID,
		category.IsActive, category.Level).Scan(&result.ID, &result.Name, &result.Slug,
		&result.ParentID, &result.IsActive, &result.Level, &result.CreatedAt, &result.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateManyByNames updates every category whose name is in the set, touching
// only the non-nil patch fields. A zero affected count is a valid outcome.
func (r *categoryRepo) UpdateManyByNames(ctx context.Context, names []string, patch *models.CategoryPatch) (int64, error) {
	set, args := buildCategorySet(patch)
	args = append(args, names)
	query := fmt.Sprintf(`
		UPDATE categories
		SET %s, updated_at = NOW()
		WHERE name = ANY($%d)
	`, strings.Join(set, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *categoryRepo) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	query := `DELETE FROM categories WHERE id = ANY($1)`
	tag, err := r.db.Exec(ctx, query, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CreateWithProducts inserts the category and its child products in one
// transaction; either all rows land or none do.
func (r *categoryRepo) CreateWithProducts(ctx context.Context, category *models.Category, products []*models.Product) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO categories (name, slug, parent_id, is_active, level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, category.Name, category.Slug, category.ParentID, category.IsActive, category.Level).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return err
	}

	for _, p := range products {
		p.CategoryID = category.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO products (category_id, name, slug, description, is_digital, is_active, price, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`, p.CategoryID, p.Name, p.Slug, p.Description, p.IsDigital, p.IsActive, p.Price).
			Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	category.Products = products
	return nil
}

// buildCategorySet turns the non-nil patch fields into SET clauses. Callers
// must ensure the patch is not empty.
func buildCategorySet(patch *models.CategoryPatch) ([]string, []any) {
	var set []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Slug != nil {
		add("slug", *patch.Slug)
	}
	if patch.ParentID != nil {
		add("parent_id", *patch.ParentID)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.Level != nil {
		add("level", *patch.Level)
	}
	return set, args
}
