package main

import "github.com/tumbleweedd/pineapple_store/storefront_service/internal/app"

func main() {
	app.Run()
}
