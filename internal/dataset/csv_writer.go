package dataset

import (
	"encoding/csv"
	"io"

	"fraud-data-simulator/internal/models"
)

// csvChunkWriter пишет чанки в CSV. Заголовок пишется один раз, перед первым чанком.
// Поля с запятыми (geolocation) экранируются кавычками средствами encoding/csv.
type csvChunkWriter struct {
	w             *csv.Writer
	headerWritten bool
	rows          int
}

func newCSVChunkWriter(w io.Writer) *csvChunkWriter {
	return &csvChunkWriter{w: csv.NewWriter(w)}
}

// WriteChunk сериализует чанк и сбрасывает буфер в файл
func (c *csvChunkWriter) WriteChunk(chunk []models.Transaction) error {
	if !c.headerWritten {
		if err := c.w.Write(models.CSVHeader); err != nil {
			return err
		}
		c.headerWritten = true
	}

	for i := range chunk {
		if err := c.w.Write(chunk[i].CSVRecord()); err != nil {
			return err
		}
	}

	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return err
	}
	c.rows += len(chunk)
	return nil
}

// Rows возвращает количество записанных строк данных
func (c *csvChunkWriter) Rows() int {
	return c.rows
}
