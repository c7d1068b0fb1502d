package badges

import (
	"time"

	"github.com/shopspring/decimal"
)

var goldSaverBalance = decimal.NewFromInt(10000)

const (
	milestoneTransactions  = 100
	activeUserTransactions = 10
	zeroDebtWindowDays     = 30
	consistencyRunDays     = 5
	smartSpenderPayments   = 10
	earlyBirdWindow        = 24 * time.Hour
	nightOwlEndHour        = 5
	savingsStreakMonths    = 3
)

func goldSaver(a Activity) bool {
	return a.Account.CurrentBalance.GreaterThanOrEqual(goldSaverBalance)
}

func milestone100(a Activity) bool {
	return len(a.Transactions) >= milestoneTransactions
}

func activeUser(a Activity) bool {
	return len(a.Transactions) >= activeUserTransactions
}

// zeroDebt holds when no withdrawal happened after now minus 30 calendar days.
func zeroDebt(a Activity) bool {
	cutoff := a.Now.AddDate(0, 0, -zeroDebtWindowDays)
	for _, t := range a.Transactions {
		if t.Direction == DirectionWithdrawal && t.OccurredAt.After(cutoff) {
			return false
		}
	}
	return true
}

// consistencyChamp looks for deposits on 5 consecutive calendar days.
// Several deposits on one day count once.
func consistencyChamp(a Activity) bool {
	loc := a.Now.Location()

	run := 0
	var last civilDay
	for _, t := range a.Transactions {
		if t.Direction != DirectionDeposit {
			continue
		}
		day := civilDayOf(t.OccurredAt.In(loc))
		if run == 0 {
			run = 1
		} else {
			switch gap := day.daysSince(last); {
			case gap == 0:
				continue
			case gap == 1:
				run++
			default:
				run = 1
			}
		}
		last = day
		if run >= consistencyRunDays {
			return true
		}
	}
	return false
}

func smartSpender(a Activity) bool {
	count := 0
	for _, t := range a.Transactions {
		if t.Direction != DirectionWithdrawal {
			continue
		}
		if t.Category == CategoryBills || t.Category == CategoryGroceries {
			count++
		}
	}
	return count >= smartSpenderPayments
}

// earlyBird checks the first deposit against [signup, signup+24h).
func earlyBird(a Activity) bool {
	if a.User == nil || a.User.AccountCreatedAt.IsZero() {
		return false
	}
	signup := a.User.AccountCreatedAt
	for _, t := range a.Transactions {
		if t.Direction != DirectionDeposit {
			continue
		}
		return !t.OccurredAt.Before(signup) && t.OccurredAt.Before(signup.Add(earlyBirdWindow))
	}
	return false
}

func nightOwl(a Activity) bool {
	loc := a.Now.Location()
	for _, t := range a.Transactions {
		if t.OccurredAt.In(loc).Hour() < nightOwlEndHour {
			return true
		}
	}
	return false
}

func savingsStreak(a Activity) bool {
	loc := a.Now.Location()

	months := make(map[int]struct{})
	deposits := decimal.Zero
	withdrawals := decimal.Zero
	for _, t := range a.Transactions {
		switch t.Direction {
		case DirectionDeposit:
			local := t.OccurredAt.In(loc)
			months[local.Year()*12+int(local.Month())] = struct{}{}
			deposits = deposits.Add(t.Amount)
		case DirectionWithdrawal:
			withdrawals = withdrawals.Add(t.Amount)
		}
	}
	return len(months) >= savingsStreakMonths && deposits.GreaterThan(withdrawals)
}

func financialExplorer(a Activity) bool {
	return a.Flags.HasDownloadedReceipt
}

// civilDay is a calendar date with no zone attached.
type civilDay struct {
	date time.Time
}

func civilDayOf(t time.Time) civilDay {
	y, m, d := t.Date()
	return civilDay{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (c civilDay) daysSince(other civilDay) int {
	return int(c.date.Sub(other.date).Hours() / 24)
}
