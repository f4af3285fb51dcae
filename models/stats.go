package models

import "time"

type CategoryStat struct {
	Category      Category `json:"category"`
	AverageRating float64  `json:"averageRating"`
	CourseCount   int64    `json:"courseCount"`
}

type InstructorStat struct {
	Instructor
	NumberOfStudents int64 `json:"numberOfStudents"`
}

type AdminStats struct {
	UsersCount       int64   `json:"usersCount"`
	InstructorsCount int64   `json:"instructorsCount"`
	CoursesCount     int64   `json:"coursesCount"`
	CategoriesCount  int64   `json:"categoriesCount"`
	TotalWallet      float64 `json:"totalWallet"`
	MonthRevenue     float64 `json:"monthRevenue"`
	MonthEnrollments int64   `json:"monthEnrollments"`
}

// SalesWindow summarises enrollments created in [From, To).
type SalesWindow struct {
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	Enrollments int64     `json:"enrollments"`
	Revenue     float64   `json:"revenue"`
}
