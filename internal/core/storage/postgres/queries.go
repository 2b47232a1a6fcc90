package postgres

// SQL queries for the sales, catalog and users tables.

const (
	// querySaveSale inserts a sale document.
	// RETURNING retrieves the auto-generated ingest_seq for snapshot paging.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	querySaveSale = `
		INSERT INTO sales (
			id, customer_name, line_items, total, occurred_at
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
		RETURNING ingest_seq
	`

	// queryUpdateSaleLines is the administrative edit path: line items and the
	// recomputed total change together, so the stored document cannot
	// desynchronize.
	queryUpdateSaleLines = `
		UPDATE sales
		SET line_items = $2, total = $3
		WHERE id = $1
	`

	queryCountSales = `SELECT COUNT(*) FROM sales`

	// queryRetrieveSalesAfterCursor fetches sales after a cursor (ingest_seq)
	// in strict total order. The analysis snapshot pages through the whole
	// collection with this; cursor=0 means "from the beginning".
	queryRetrieveSalesAfterCursor = `
		SELECT
			id, customer_name, line_items, total, occurred_at, ingest_seq
		FROM sales
		WHERE ingest_seq > $1
		ORDER BY ingest_seq ASC
		LIMIT $2
	`

	queryListAreas = `
		SELECT id, name
		FROM areas
		ORDER BY name ASC
	`

	queryListProductsByArea = `
		SELECT id, name, price, area_id
		FROM products
		WHERE area_id = $1
		ORDER BY name ASC
	`

	querySaveArea = `
		INSERT INTO areas (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`

	querySaveProduct = `
		INSERT INTO products (name, price, area_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	queryCountAreas = `SELECT COUNT(*) FROM areas`

	queryFindUser = `
		SELECT username, password_hash, role
		FROM users
		WHERE username = $1
	`

	querySaveUser = `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role
	`
)
