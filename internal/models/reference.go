package models

// Employee is a phlebotomist that can be assigned to appointments.
type Employee struct {
	ID            string      `json:"_id"`
	EmployeeID    string      `json:"employeeId"`
	FullName      string      `json:"fullName"`
	Email         string      `json:"email,omitempty"`
	ContactNumber LooseString `json:"contactNumber,omitempty"`
	Image         string      `json:"image,omitempty"`
	HireDate      Timestamp   `json:"hireDate,omitempty"`
}

// Ref converts the employee into the reference stored on appointments.
func (e Employee) Ref() *EmployeeRef {
	return &EmployeeRef{ID: e.ID, EmployeeID: e.EmployeeID, FullName: e.FullName}
}

// Label renders the employee for selection controls.
func (e Employee) Label() string {
	return e.Ref().Label()
}

// Laboratory is a partner laboratory account.
type Laboratory struct {
	ID            string      `json:"_id"`
	FullName      string      `json:"fullName"`
	Email         string      `json:"email,omitempty"`
	ContactNumber LooseString `json:"contactNumber,omitempty"`
	Address       string      `json:"address,omitempty"`
	Image         string      `json:"image,omitempty"`
}

// LaboratoryChoices merges registered laboratory names with the fixed options, without duplicates.
func LaboratoryChoices(labs []Laboratory) []string {
	seen := make(map[string]struct{}, len(labs)+len(LaboratoryOptions))
	out := make([]string, 0, len(labs)+len(LaboratoryOptions))
	for _, lab := range labs {
		if lab.FullName == "" {
			continue
		}
		if _, ok := seen[lab.FullName]; ok {
			continue
		}
		seen[lab.FullName] = struct{}{}
		out = append(out, lab.FullName)
	}
	for _, name := range LaboratoryOptions {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
