// @title           taskhub API
// @version         1.0
// @description     API для управления проектами и задачами (документация Swagger).
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import "taskhub_backend/internal/app"

func main() {
	app.Run()
}
