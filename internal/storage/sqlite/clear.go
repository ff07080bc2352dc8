package sqlite

// ClearAll удаляет все прогоны и выгруженные строки
func (s *SQLiteStorage) ClearAll() error {
	return writeRetry.do("clear", func() error {
		if _, err := s.DB.Exec(`DELETE FROM transactions`); err != nil {
			return err
		}
		_, err := s.DB.Exec(`DELETE FROM dataset_runs`)
		return err
	})
}
