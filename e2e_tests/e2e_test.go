package e2etests

var createPeopleTableSQL = `CREATE TABLE people (
	id INT PRIMARY KEY,
	name VARCHAR(10) NOT NULL,
	age INT
)`

var createUsersTableSQL = `CREATE TABLE users (
	id INT PRIMARY KEY,
	name VARCHAR(50) NOT NULL,
	email VARCHAR(255) UNIQUE,
	age INT,
	created DATETIME
)`

var createOrdersTableSQL = `CREATE TABLE orders (
	id INT PRIMARY KEY,
	user_id INT NOT NULL,
	product VARCHAR(100),
	total DECIMAL
)`

var createOrdersUserIndexSQL = `CREATE INDEX idx_orders_user ON orders (user_id)`
