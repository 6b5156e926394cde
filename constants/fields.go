package constants

// Canonical field names produced by row canonicalization.
const (
	FieldDate         = "date"
	FieldISIN         = "isin"
	FieldSecurityName = "security_name"
	FieldValue        = "value"
	FieldBalance      = "balance"
	FieldMarketRate   = "market_rate"
	FieldMarketValue  = "market_value"
	FieldStatus       = "status"
	FieldSpan         = "_span"
	FieldSourcePDF    = "source_pdf"
	FieldSourceImage  = "source_image"
	FieldPage         = "page"
	FieldSerialNo     = "sr_no"
)

// BaseColumns are the fixed leading columns of every export, in order.
var BaseColumns = []string{FieldDate, FieldISIN, FieldSecurityName, FieldValue}

// ValuePriority is the candidate order for the unified value field.
// Statements name their value column inconsistently across issuers; market
// value is the most authoritative figure when several are present.
var ValuePriority = []string{
	FieldMarketValue,
	"saleable_position_holding",
	"total_face_value",
	"amount",
	FieldValue,
}
