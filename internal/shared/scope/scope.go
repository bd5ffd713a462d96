package scope

import "gorm.io/gorm"

func Employee(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

// MonthPrefix keeps rows whose YYYY-MM-DD date column starts with month.
func MonthPrefix(column, month string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if month == "" {
			return db
		}
		return db.Where(column+" LIKE ?", month+"-%")
	}
}
