package main

import (
	"context"
	"log"

	"Relief_Hub/internal/config"
	"Relief_Hub/internal/model"
	"Relief_Hub/internal/pkg"
	"Relief_Hub/internal/repository/mysql"
	"Relief_Hub/internal/repository/redis"
	"Relief_Hub/internal/router"
	"Relief_Hub/internal/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	pkg.AccessSecret = []byte(cfg.JWTAccessSecret)
	pkg.RefreshSecret = []byte(cfg.JWTRefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		panic(err)
	}

	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.Resource{},
		&model.Donation{},
		&model.Request{},
		&model.AdminResponse{},
		&model.VolunteerAssignment{},
		&model.ReliefOutbox{},
	); err != nil {
		panic(err)
	}

	if err := seedData(mysql.DB, cfg); err != nil {
		log.Printf("seed err: %v", err)
	}

	// 审批/履约事件投递
	sender := service.Sender(service.LogSender)
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Printf("kafka init err: %v", err)
		} else {
			defer producer.Close()
			sender = service.KafkaSender(producer)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.NewOutboxRelayer(mysql.DB, sender).Run(ctx)

	smtp := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	r := router.InitRouter(mysql.DB, smtp)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		panic(err)
	}
}

// seedData 初始化管理员与示例目录，管理员已存在时跳过
func seedData(db *gorm.DB, cfg *config.Config) error {
	var n int64
	if err := db.Model(&model.User{}).Where("email = ?", cfg.AdminEmail).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name:         "Admin User",
		Email:        cfg.AdminEmail,
		Phone:        "+1234567890",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	events := []model.Event{
		{
			Name:        "Hurricane Relief - Florida",
			Description: "Major hurricane causing widespread damage and flooding.",
			Latitude:    27.6648, Longitude: -81.5158,
			Severity: model.SeverityHigh, Status: model.EventActive,
		},
		{
			Name:        "Earthquake Response - California",
			Description: "7.2 magnitude earthquake affecting urban areas.",
			Latitude:    36.7783, Longitude: -119.4179,
			Severity: model.SeverityCritical, Status: model.EventActive,
		},
	}
	if err := db.Create(&events).Error; err != nil {
		return err
	}

	resources := []model.Resource{
		{Name: "Bottled Water", Category: "Food", Description: "Clean drinking water", TotalQuantity: 1000, AvailableQuantity: 850, Unit: "bottles"},
		{Name: "Emergency Blankets", Category: "Shelter", Description: "Thermal blankets", TotalQuantity: 500, AvailableQuantity: 500, Unit: "units"},
		{Name: "First Aid Kits", Category: "Medical", Description: "Basic medical supplies", TotalQuantity: 200, AvailableQuantity: 180, Unit: "kits"},
		{Name: "Canned Food", Category: "Food", Description: "Non-perishable food", TotalQuantity: 800, AvailableQuantity: 750, Unit: "cans"},
		{Name: "Tents", Category: "Shelter", Description: "Emergency shelters", TotalQuantity: 100, AvailableQuantity: 95, Unit: "units"},
	}
	return db.Create(&resources).Error
}
