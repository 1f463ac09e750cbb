package books

const (
	queryCreate = `
		INSERT INTO books (title, author, description)
		VALUES ($1, $2, $3)
		RETURNING id, title, author, description, created_at, updated_at
	`

	queryList = `
		SELECT id, title, author, description, created_at, updated_at
		FROM books
		ORDER BY created_at DESC
	`

	// case-insensitive substring match across the text columns
	querySearch = `
		SELECT id, title, author, description, created_at, updated_at
		FROM books
		WHERE title ILIKE '%' || $1 || '%'
		   OR author ILIKE '%' || $1 || '%'
		   OR description ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`

	queryGet = `
		SELECT id, title, author, description, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	queryUpdate = `
		UPDATE books
		SET title = COALESCE($1, title),
		    author = COALESCE($2, author),
		    description = COALESCE($3, description),
		    updated_at = NOW()
		WHERE id = $4
		RETURNING id, title, author, description, created_at, updated_at
	`

	queryDelete = `
		DELETE FROM books
		WHERE id = $1
	`
)
