package bot

import (
	"sync"

	"github.com/koolexil/koolbot/internal/models"
)

// Mode is the state of one user's dialog. Every terminal transition
// returns to ModeIdle.
type Mode int

const (
	ModeIdle Mode = iota

	// Direct lookups, result is displayed.
	ModeSearchMeter
	ModeSearchName
	ModeSearchPhone

	// Lookups feeding a follow-up edit.
	ModeSearchReading // result enters AwaitValue on the current reading
	ModeSearchPay     // result enters AwaitValue on the paid amount
	ModeSearchEdit    // result shows the field chooser

	// Awaiting a new value for Session.EditField.
	ModeAwaitValue

	// Add-subscriber wizard, strictly linear.
	ModeAddSubName
	ModeAddSubPhone
	ModeAddSubMeter
	ModeAddSubPrev
	ModeAddSubCurr
	ModeAddSubArrears
	ModeAddSubPaid

	// Administrator creation.
	ModeAdminNewName
	ModeAdminNewPin

	// Scheduled report dialog.
	ModeReportDay
	ModeReportRangeStart
	ModeReportRangeEnd
	ModeReportChooseFormat
)

// Session is the per-user dialog context. The selected index is a weak
// reference into the record set: it must be re-validated against the
// freshly loaded records on every use.
type Session struct {
	Mode         Mode
	Selected     int          // selected record index, -1 when none
	EditField    models.Field // field awaiting a value
	SearchField  models.Field // lookup field for reading/pay/edit flows
	Draft        *models.Subscriber
	NewAdminName string
	PermTarget   string // administrator whose permission matrix is open
	Report       models.ReportFilter
	ActiveAdmin  string // account used for permission lookups
}

// Reset returns the session to the idle mode and clears every pending
// draft. The selected record and the active administrator survive, so a
// completed lookup can still be inspected through the field list.
func (s *Session) Reset() {
	s.Mode = ModeIdle
	s.EditField = ""
	s.SearchField = ""
	s.Draft = nil
	s.NewAdminName = ""
	s.PermTarget = ""
	s.Report = models.ReportFilter{}
}

// PickOutcome tells the caller how to continue after a record has been
// selected, either from a single-hit lookup or from an explicit pick on
// an ambiguous one.
type PickOutcome int

const (
	PickShowRecord PickOutcome = iota
	PickAwaitReading
	PickAwaitPayment
	PickChooseField
)

// SelectRecord stores the chosen record index and re-enters the flow
// that was active before the pick, exactly where the single-match path
// would have.
func (s *Session) SelectRecord(idx int) PickOutcome {
	s.Selected = idx
	switch s.Mode {
	case ModeSearchReading:
		s.EditField = models.FieldCurrReading
		s.Mode = ModeAwaitValue
		return PickAwaitReading
	case ModeSearchPay:
		s.EditField = models.FieldPaid
		s.Mode = ModeAwaitValue
		return PickAwaitPayment
	case ModeSearchEdit:
		return PickChooseField
	default:
		s.Mode = ModeIdle
		return PickShowRecord
	}
}

// SessionManager manages the dialog sessions of all users.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[int64]*Session)}
}

// Get returns the session for the user, creating it on first use.
func (m *SessionManager) Get(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{Selected: -1, ActiveAdmin: models.DefaultAdminName}
		m.sessions[userID] = sess
	}
	return sess
}
