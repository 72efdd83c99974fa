// File: services/stats.go
package services

import (
	"recruit-portal/models"
	"recruit-portal/store"
)

// DomainStats are per-domain applicant counts for a coordinator dashboard.
type DomainStats struct {
	Total       int      `json:"total"`
	Pending     int      `json:"pending"` // not yet interviewed
	Interviewed int      `json:"interviewed"`
	Accepted    int      `json:"accepted"`
	Rejected    int      `json:"rejected"`
	Scored      int      `json:"scored"`
	AvgScore    *float64 `json:"avg_score"` // nil until something is scored
}

// DomainOverview is one row of the admin overview table.
type DomainOverview struct {
	DomainID        string `json:"domain_id"`
	DomainName      string `json:"domain_name"`
	TotalApplicants int    `json:"total_applicants"`
	Accepted        int    `json:"accepted"`
	Rejected        int    `json:"rejected"`
	Pending         int    `json:"pending"`
}

// Overview is the admin dashboard aggregate.
type Overview struct {
	TotalStudents     int              `json:"total_students"`
	TotalApplications int              `json:"total_applications"`
	TotalAccepted     int              `json:"total_accepted"`
	DomainStats       []DomainOverview `json:"domain_stats"`
}

// MultiDomainStudent is a user accepted into two or more domains.
type MultiDomainStudent struct {
	User    models.User `json:"user"`
	Domains []string    `json:"domains"` // accepted domain names
}

// SummarizeDomain aggregates one domain's applications in memory.
func SummarizeDomain(apps []models.Application) DomainStats {
	var stats DomainStats
	stats.Total = len(apps)

	var scoreSum int
	for _, a := range apps {
		if a.InterviewDone {
			stats.Interviewed++
		} else {
			stats.Pending++
		}
		switch a.Status {
		case models.StatusAccepted:
			stats.Accepted++
		case models.StatusRejected:
			stats.Rejected++
		}
		if a.Score != nil {
			stats.Scored++
			scoreSum += *a.Score
		}
	}
	if stats.Scored > 0 {
		avg := float64(scoreSum) / float64(stats.Scored)
		stats.AvgScore = &avg
	}
	return stats
}

// BuildOverview folds the full application set into per-domain counts.
// One pass over the rows instead of a query per domain.
func BuildOverview(domains []models.Domain, rows []store.ExportRow, totalStudents int) Overview {
	byDomain := make(map[string]*DomainOverview, len(domains))
	ordered := make([]DomainOverview, len(domains))
	for i, d := range domains {
		ordered[i] = DomainOverview{DomainID: d.ID, DomainName: d.Name}
		byDomain[d.ID] = &ordered[i]
	}

	overview := Overview{TotalStudents: totalStudents, TotalApplications: len(rows)}
	for _, r := range rows {
		stats, ok := byDomain[r.DomainID]
		if !ok {
			continue
		}
		stats.TotalApplicants++
		switch r.Status {
		case models.StatusAccepted:
			stats.Accepted++
			overview.TotalAccepted++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	for i := range ordered {
		ordered[i].Pending = ordered[i].TotalApplicants - ordered[i].Accepted - ordered[i].Rejected
	}
	overview.DomainStats = ordered
	return overview
}

// MultiDomainAcceptances groups accepted applications by user and keeps
// everyone accepted into at least two domains, in row order.
func MultiDomainAcceptances(rows []store.ExportRow) []MultiDomainStudent {
	byUser := make(map[string]*MultiDomainStudent)
	var order []string
	for _, r := range rows {
		if r.Status != models.StatusAccepted {
			continue
		}
		entry, ok := byUser[r.UserID]
		if !ok {
			entry = &MultiDomainStudent{User: r.User}
			byUser[r.UserID] = entry
			order = append(order, r.UserID)
		}
		entry.Domains = append(entry.Domains, r.DomainName)
	}

	var out []MultiDomainStudent
	for _, id := range order {
		if entry := byUser[id]; len(entry.Domains) >= 2 {
			out = append(out, *entry)
		}
	}
	return out
}
