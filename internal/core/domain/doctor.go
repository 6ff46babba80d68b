package domain

// Doctor - профиль врача из бэкенда, используется для шапки календаря
type Doctor struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Experience     string `json:"experience"`
	Bio            string `json:"bio"`
	Image          string `json:"image"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}

// DashboardCounts - агрегированные счетчики клиники
type DashboardCounts map[string]int
