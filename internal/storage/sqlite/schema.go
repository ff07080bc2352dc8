package sqlite

// initSchema инициализирует схему БД
func (s *SQLiteStorage) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS dataset_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT UNIQUE NOT NULL,
		output_path TEXT NOT NULL,
		total_records INTEGER NOT NULL,
		chunk_size INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'running',
		records_written INTEGER NOT NULL DEFAULT 0,
		chunks_flushed INTEGER NOT NULL DEFAULT 0,
		fraud_count INTEGER NOT NULL DEFAULT 0,
		error_message TEXT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES dataset_runs(run_id) ON DELETE CASCADE,
		transaction_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		transaction_timestamp TEXT NOT NULL,
		transaction_amount TEXT NOT NULL,
		merchant_id TEXT NOT NULL,
		merchant_category TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		ip_address TEXT NOT NULL,
		geolocation TEXT NOT NULL,
		device_id TEXT NOT NULL,
		device_type TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		transaction_status TEXT NOT NULL,
		is_fraud INTEGER NOT NULL,
		risk_score INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON dataset_runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_transactions_run_id ON transactions(run_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_is_fraud ON transactions(is_fraud);
	`

	_, err := s.DB.Exec(query)
	return err
}
