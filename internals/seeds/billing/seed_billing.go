package billing

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	groupModel "langschool_backend/internals/features/school/groups/model"
	userModel "langschool_backend/internals/features/school/users/model"
)

type userSeed struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type courseSeed struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

type groupSeed struct {
	Name        string `json:"name"`
	CourseTitle string `json:"course_title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type billingSeed struct {
	Users   []userSeed   `json:"users"`
	Courses []courseSeed `json:"courses"`
	Groups  []groupSeed  `json:"groups"`
}

// SeedBillingFromJSON inserts demo users, courses and groups for local
// development. Existing rows (matched by email / title / name) are skipped,
// so re-running is safe.
func SeedBillingFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading billing seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Failed to read seed file: %v", err)
	}

	var data billingSeed
	if err := json.Unmarshal(file, &data); err != nil {
		log.Fatalf("❌ Failed to decode seed JSON: %v", err)
	}

	for _, u := range data.Users {
		var existing userModel.UserModel
		if err := db.Where("user_email = ?", u.Email).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User '%s' already exists, skipped.", u.Email)
			continue
		}
		row := userModel.UserModel{
			UserID:        uuid.New(),
			UserFirstName: u.FirstName,
			UserLastName:  u.LastName,
			UserEmail:     u.Email,
			UserRole:      u.Role,
			UserIsActive:  true,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Failed to seed user '%s': %v", u.Email, err)
		}
	}

	courseIDs := map[string]uuid.UUID{}
	for _, c := range data.Courses {
		var existing groupModel.CourseModel
		if err := db.Where("course_title = ?", c.Title).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Course '%s' already exists, skipped.", c.Title)
			courseIDs[c.Title] = existing.CourseID
			continue
		}
		price, err := decimal.NewFromString(c.Price)
		if err != nil {
			log.Printf("❌ Bad price for course '%s': %v", c.Title, err)
			continue
		}
		row := groupModel.CourseModel{
			CourseID:    uuid.New(),
			CourseTitle: c.Title,
			CoursePrice: price,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Failed to seed course '%s': %v", c.Title, err)
			continue
		}
		courseIDs[c.Title] = row.CourseID
	}

	for _, g := range data.Groups {
		courseID, ok := courseIDs[g.CourseTitle]
		if !ok {
			log.Printf("❌ Group '%s' references unknown course '%s'", g.Name, g.CourseTitle)
			continue
		}
		var existing groupModel.GroupModel
		if err := db.Where("group_name = ?", g.Name).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Group '%s' already exists, skipped.", g.Name)
			continue
		}
		start, err1 := time.Parse("2006-01-02", g.StartDate)
		end, err2 := time.Parse("2006-01-02", g.EndDate)
		if err1 != nil || err2 != nil {
			log.Printf("❌ Bad dates for group '%s'", g.Name)
			continue
		}
		row := groupModel.GroupModel{
			GroupID:        uuid.New(),
			GroupCourseID:  courseID,
			GroupName:      g.Name,
			GroupStartDate: start,
			GroupEndDate:   end,
			GroupIsActive:  true,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Failed to seed group '%s': %v", g.Name, err)
		}
	}

	log.Println("✅ Billing seed finished")
}
