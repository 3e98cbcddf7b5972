package catalog

import "fmt"

// Finding is a dangling reference found by Validate.
type Finding struct {
	Subject string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Subject, f.Message)
}

// Validate reports event options that name unknown outcomes and outcome
// results that name unknown items. Resolution still fails open on these;
// Validate is for content tooling.
func Validate(s *Static) []Finding {
	var findings []Finding
	for _, c := range s.EventCards() {
		for i, opt := range c.Options {
			if _, ok := s.Outcome(opt.OutcomeID); !ok {
				findings = append(findings, Finding{
					Subject: c.ID,
					Message: fmt.Sprintf("option %d references unknown outcome %q", i, opt.OutcomeID),
				})
			}
		}
	}
	for _, id := range s.OutcomeIDs() {
		o := s.outcomes[id]
		for _, branch := range []struct {
			name   string
			result Result
		}{{"success", o.Success}, {"failure", o.Failure}} {
			for _, itemID := range branch.result.ItemsGained {
				if _, ok := s.items[itemID]; !ok {
					findings = append(findings, Finding{
						Subject: id,
						Message: fmt.Sprintf("%s gains unknown item %q", branch.name, itemID),
					})
				}
			}
			for _, itemID := range branch.result.ItemsLost {
				if _, ok := s.items[itemID]; !ok {
					findings = append(findings, Finding{
						Subject: id,
						Message: fmt.Sprintf("%s loses unknown item %q", branch.name, itemID),
					})
				}
			}
		}
	}
	return findings
}
