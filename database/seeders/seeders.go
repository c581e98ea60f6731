package seeders

import (
	"log"
	"time"

	"gymdesk_go/database"
	"gymdesk_go/models"
	"gymdesk_go/utils"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedUsers()
	SeedMemberships()
	SeedMembers()
	SeedMemberMemberships()

	log.Println("Database seeding completed successfully!")
}

// SeedUsers seeds the staff accounts
func SeedUsers() {
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping...")
		return
	}

	hashedPassword, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username: "owner",
			Password: hashedPassword,
			Name:     "Gym Owner",
			Email:    "owner@gymdesk.local",
			Phone:    "081-000-0001",
			Role:     "owner",
			Status:   "active",
		},
		{
			Username: "admin",
			Password: hashedPassword,
			Name:     "Front Desk Admin",
			Email:    "admin@gymdesk.local",
			Phone:    "081-000-0002",
			Role:     "admin",
			Status:   "active",
		},
		{
			Username: "staff",
			Password: hashedPassword,
			Name:     "Front Desk Staff",
			Email:    "staff@gymdesk.local",
			Phone:    "081-000-0003",
			Role:     "staff",
			Status:   "active",
		},
	}

	for _, user := range users {
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("Error seeding user %s: %v", user.Username, err)
		}
	}

	log.Println("Users seeded successfully")
}

// SeedMemberships seeds the sellable plans, including one unlimited plan
func SeedMemberships() {
	var count int64
	database.DB.Model(&models.Membership{}).Count(&count)
	if count > 0 {
		log.Println("Memberships already seeded, skipping...")
		return
	}

	ten := 10
	thirty := 30

	memberships := []models.Membership{
		{
			Name:             "10-Visit Pass",
			Description:      "Ten gym visits, valid for 60 days",
			MaxAttendanceQty: &ten,
			DurationDays:     60,
			Price:            1200,
			IsActive:         true,
		},
		{
			Name:             "Monthly 30-Visit",
			Description:      "Thirty visits in thirty days",
			MaxAttendanceQty: &thirty,
			DurationDays:     30,
			Price:            1500,
			IsActive:         true,
		},
		{
			Name:             "Monthly Unlimited",
			Description:      "Unlimited visits for thirty days",
			MaxAttendanceQty: nil,
			DurationDays:     30,
			Price:            1900,
			IsActive:         true,
		},
		{
			Name:             "Annual Unlimited",
			Description:      "Unlimited visits for a full year",
			MaxAttendanceQty: nil,
			DurationDays:     365,
			Price:            15000,
			IsActive:         true,
		},
	}

	for _, membership := range memberships {
		if err := database.DB.Create(&membership).Error; err != nil {
			log.Printf("Error seeding membership %s: %v", membership.Name, err)
		}
	}

	log.Println("Memberships seeded successfully")
}

// SeedMembers seeds a handful of gym members
func SeedMembers() {
	var count int64
	database.DB.Model(&models.Member{}).Count(&count)
	if count > 0 {
		log.Println("Members already seeded, skipping...")
		return
	}

	members := []models.Member{
		{
			Name:    "Somsak Jaidee",
			Email:   "somsak@example.com",
			Phone:   "089-111-2233",
			Address: "Nakhon Ratchasima",
		},
		{
			Name:    "Pranee Suksawat",
			Email:   "pranee@example.com",
			Phone:   "089-222-3344",
			Address: "Nakhon Ratchasima",
		},
		{
			Name:    "Anan Thongchai",
			Email:   "anan@example.com",
			Phone:   "089-333-4455",
			Address: "Khon Kaen",
		},
	}

	for _, member := range members {
		code, err := utils.GenerateMemberCode()
		if err != nil {
			log.Printf("Error generating member code for %s: %v", member.Name, err)
			continue
		}
		member.MemberCode = code
		if err := database.DB.Create(&member).Error; err != nil {
			log.Printf("Error seeding member %s: %v", member.Name, err)
		}
	}

	log.Println("Members seeded successfully")
}

// SeedMemberMemberships assigns a plan to each seeded member. Snapshots are
// copied manually here the same way AssignMembership does it.
func SeedMemberMemberships() {
	var count int64
	database.DB.Model(&models.MemberMembership{}).Count(&count)
	if count > 0 {
		log.Println("Member memberships already seeded, skipping...")
		return
	}

	var members []models.Member
	if err := database.DB.Order("id").Find(&members).Error; err != nil || len(members) == 0 {
		log.Println("No members to assign memberships to, skipping...")
		return
	}

	var memberships []models.Membership
	if err := database.DB.Order("id").Find(&memberships).Error; err != nil || len(memberships) == 0 {
		log.Println("No memberships to assign, skipping...")
		return
	}

	now := time.Now()

	for i, member := range members {
		plan := memberships[i%len(memberships)]

		var snapshotQty *int
		if plan.MaxAttendanceQty != nil {
			qty := *plan.MaxAttendanceQty
			snapshotQty = &qty
		}

		assignment := models.MemberMembership{
			MemberID:                 member.ID,
			MembershipID:             plan.ID,
			SnapshotMembershipName:   plan.Name,
			SnapshotMaxAttendanceQty: snapshotQty,
			SnapshotDurationDays:     plan.DurationDays,
			SnapshotPrice:            plan.Price,
			StartedAt:                now,
			ExpiredAt:                now.In(time.Local).AddDate(0, 0, plan.DurationDays),
			Status:                   models.AssignmentStatusActive,
		}

		if err := database.DB.Create(&assignment).Error; err != nil {
			log.Printf("Error seeding assignment for member %s: %v", member.MemberCode, err)
		}
	}

	log.Println("Member memberships seeded successfully")
}
