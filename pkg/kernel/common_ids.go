package kernel

// CaseID identifies a client case
type CaseID int64

func NewCaseID(id int64) CaseID { return CaseID(id) }
func (c CaseID) Int64() int64   { return int64(c) }
func (c CaseID) IsEmpty() bool  { return int64(c) == 0 }

// RecordID identifies an OCR record
type RecordID int64

func NewRecordID(id int64) RecordID { return RecordID(id) }
func (r RecordID) Int64() int64     { return int64(r) }
func (r RecordID) IsEmpty() bool    { return int64(r) == 0 }
