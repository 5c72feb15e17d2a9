package prayer

import "time"

// Tier classifies how far into its window a session was marked.
type Tier string

const (
	TierEarly  Tier = "early"
	TierMiddle Tier = "middle"
	TierLate   Tier = "late"
)

// Point weights per marked item. Namaz points depend on the tier; the rest
// are flat.
const (
	PointsEarly    = 3.0
	PointsMiddle   = 2.0
	PointsLate     = 1.0
	PointsDua      = 1.0
	PointsQuran    = 1.0
	PointsDhikr    = 0.5
	PointsGoodDeed = 0.5
	PointsQaza     = 0.5
)

// DefaultPercentage is assumed for attendance rows persisted without a
// time percentage (legacy rows); it lands in the middle tier.
const DefaultPercentage = 50.0

// Percentage returns how far now sits inside [start, end] as 0-100,
// clamped on both sides. A zero or negative-length window counts as fully
// elapsed so it maps to the latest tier instead of dividing by zero.
func Percentage(now, start, end time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 100
	}
	pct := float64(now.Sub(start)) / float64(total) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// TierFor maps an elapsed percentage to a tier. Upper bounds are
// inclusive: exactly 33.33 is early, exactly 66.66 is middle.
func TierFor(pct float64) Tier {
	switch {
	case pct <= 33.33:
		return TierEarly
	case pct <= 66.66:
		return TierMiddle
	default:
		return TierLate
	}
}

// NamazPoints returns the namaz point weight for a tier.
func NamazPoints(t Tier) float64 {
	switch t {
	case TierEarly:
		return PointsEarly
	case TierMiddle:
		return PointsMiddle
	default:
		return PointsLate
	}
}

// Feedback is the message shown after a submission, in English and Urdu.
type Feedback struct {
	Title     string `json:"title"`
	TitleUrdu string `json:"title_urdu"`
	Message   string `json:"message"`
	MsgUrdu   string `json:"message_urdu"`
}

// FeedbackFor returns the tier's feedback message.
func FeedbackFor(t Tier) Feedback {
	switch t {
	case TierEarly:
		return Feedback{
			Title:     "Awal Waqt!",
			TitleUrdu: "اول وقت!",
			Message:   "Excellent! You have prayed in the first time of prayer. May Allah accept your prayers.",
			MsgUrdu:   "بہت خوب! آپ نے اول وقت میں نماز پڑھی۔ اللہ آپ کی نمازیں قبول فرمائے۔",
		}
	case TierMiddle:
		return Feedback{
			Title:     "Shabash!",
			TitleUrdu: "شاباش!",
			Message:   "Good work! You have offered your prayer. May Allah bless you.",
			MsgUrdu:   "شاباش! آپ نے نماز ادا کی۔ اللہ آپ کو برکت دے۔",
		}
	default:
		return Feedback{
			Title:     "Masha Allah",
			TitleUrdu: "ماشاءاللہ",
			Message:   "Masha Allah, you have read the Namaz, but try to read it as early as possible.",
			MsgUrdu:   "ماشاءاللہ، آپ نے نماز پڑھی، لیکن جلد از جلد پڑھنے کی کوشش کریں۔",
		}
	}
}
