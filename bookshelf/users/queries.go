package users

const (
	queryCreate = `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, provider, provider_id, created_at, updated_at
	`

	queryFindByEmail = `
		SELECT id, email, password_hash, provider, provider_id, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	queryFindByID = `
		SELECT id, email, password_hash, provider, provider_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	// upsert keyed on the provider subject id, never on email: two
	// providers sharing an email must not silently merge accounts.
	// On conflict the existing record is reused untouched apart from
	// the updated_at bump; email is never rewritten once set.
	queryFindOrCreateByProvider = `
		INSERT INTO users (provider, provider_id, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (provider, provider_id)
		DO UPDATE SET updated_at = NOW()
		RETURNING id, email, password_hash, provider, provider_id, created_at, updated_at
	`
)
