package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stack-insights/statement-recon/constants"
	"github.com/stack-insights/statement-recon/internal/rows"
)

func TestDriverFor(t *testing.T) {
	assert.Equal(t, "pgx", driverFor("postgres://user:pw@localhost/recon"))
	assert.Equal(t, "pgx", driverFor("postgresql://localhost/recon"))
	assert.Equal(t, "sqlite", driverFor("recon.db"))
	assert.Equal(t, "sqlite", driverFor("file:recon.db?mode=rwc"))
}

func TestNullString(t *testing.T) {
	row := rows.Row{
		constants.FieldISIN: "INE002A01018",
		"empty":             nil,
	}

	s := nullString(row, constants.FieldISIN)
	assert.True(t, s.Valid)
	assert.Equal(t, "INE002A01018", s.String)

	assert.False(t, nullString(row, "empty").Valid)
	assert.False(t, nullString(row, "absent").Valid)
}

func TestNullInt(t *testing.T) {
	row := rows.Row{
		constants.FieldPage:     3,
		constants.FieldSerialNo: int64(7),
		"float":                 2.0,
		"text":                  "12",
	}

	assert.Equal(t, int64(3), nullInt(row, constants.FieldPage).Int64)
	assert.Equal(t, int64(7), nullInt(row, constants.FieldSerialNo).Int64)
	assert.Equal(t, int64(2), nullInt(row, "float").Int64)
	assert.False(t, nullInt(row, "text").Valid)
	assert.False(t, nullInt(row, "absent").Valid)
}

func TestRowSourcePrefersPDF(t *testing.T) {
	both := rows.Row{
		constants.FieldSourcePDF:   "stmt.pdf",
		constants.FieldSourceImage: "scan.png",
	}
	assert.Equal(t, "stmt.pdf", rowSource(both).String)

	imageOnly := rows.Row{constants.FieldSourceImage: "scan.png"}
	assert.Equal(t, "scan.png", rowSource(imageOnly).String)

	assert.False(t, rowSource(rows.Row{}).Valid)
}
