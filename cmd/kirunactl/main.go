// kirunactl：离线运行文档校验与图表布局
package main

func main() {
	Execute()
}
