package config

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables lists the tables EnsureSchema manages.
var Tables = []string{"routes", "schedules", "bookings", "contact_inquiries"}

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS routes (
	id CHAR(36) NOT NULL PRIMARY KEY,
	from_city VARCHAR(120) COLLATE utf8mb4_bin NOT NULL,
	to_city VARCHAR(120) COLLATE utf8mb4_bin NOT NULL,
	from_country VARCHAR(120) NOT NULL,
	to_country VARCHAR(120) NOT NULL,
	distance INT NULL,
	estimated_duration INT NULL,
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_routes_cities (from_city, to_city)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS schedules (
	id CHAR(36) NOT NULL PRIMARY KEY,
	route_id CHAR(36) NOT NULL,
	departure_time DATETIME NOT NULL,
	arrival_time DATETIME NOT NULL,
	vehicle_type VARCHAR(50) NOT NULL,
	max_passengers INT NULL DEFAULT 55,
	available_seats INT NULL DEFAULT 55,
	base_price_passenger DECIMAL(10,2) NULL,
	base_price_package DECIMAL(10,2) NULL,
	base_price_car DECIMAL(10,2) NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
	driver_info JSON NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_schedules_route_departure (route_id, departure_time),
	CONSTRAINT fk_schedules_route FOREIGN KEY (route_id) REFERENCES routes(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS bookings (
	id CHAR(36) NOT NULL PRIMARY KEY,
	schedule_id CHAR(36) NOT NULL,
	service_type VARCHAR(20) NOT NULL,
	customer_name VARCHAR(255) NOT NULL,
	customer_email VARCHAR(255) NOT NULL,
	customer_phone VARCHAR(100) NOT NULL,
	passenger_count INT NULL,
	passenger_names JSON NULL,
	package_weight DECIMAL(10,2) NULL,
	package_description TEXT NULL,
	car_make VARCHAR(100) NULL,
	car_model VARCHAR(100) NULL,
	car_year INT NULL,
	car_plate_number VARCHAR(50) NULL,
	pickup_address TEXT NULL,
	delivery_address TEXT NULL,
	special_requests TEXT NULL,
	total_price DECIMAL(10,2) NOT NULL,
	payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
	booking_status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_bookings_schedule (schedule_id),
	KEY idx_bookings_created (created_at),
	CONSTRAINT fk_bookings_schedule FOREIGN KEY (schedule_id) REFERENCES schedules(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS contact_inquiries (
	id CHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NULL,
	subject VARCHAR(255) NOT NULL,
	message TEXT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'new',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	KEY idx_inquiries_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

// EnsureSchema creates the booking tables when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db not available")
	}
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}
