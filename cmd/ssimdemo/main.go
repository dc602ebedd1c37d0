// Command ssimdemo exercises the ssim library through a small CLI,
// the way the teacher's akita command exercises the akita library.
package main

func main() {
	Execute()
}
